package terminal

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// Errors a BillAPI returns for the interpreter to report.
var (
	// ErrUnauthenticated means the session has no valid credentials.
	ErrUnauthenticated = errors.New("please ensure you are signed in")
	// ErrNotFound means the bill or item does not exist for this session.
	ErrNotFound = errors.New("not found")
	// ErrTransport means the request never got an answer.
	ErrTransport = errors.New("network error")
)

// RejectedError is returned when the server refused a request, for example
// a duplicate reference. Reason is shown to the user.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// failure is an error whose text is shown to the user unchanged.
type failure string

func (f failure) Error() string {
	return string(f)
}

// action names an operation in messages: "create bill", "creating bill".
type action struct {
	do    string
	doing string
}

var (
	actFetchBills = action{"fetch bills", "fetching bills"}
	actShowBill   = action{"fetch bill details", "fetching bill details"}
	actCreateBill = action{"create bill", "creating bill"}
	actAddItem    = action{"add item", "adding item"}
	actRemoveItem = action{"remove item", "removing item"}
	actUpdateBill = action{"update bill", "updating bill"}
	actTaxRate    = action{"update tax rate", "updating tax rate"}
	actService    = action{"update service charge", "updating service charge"}
	actVoucher    = action{"update voucher/discount", "updating voucher/discount"}
)

// fail turns an API error into the message shown for a.
func (a action) fail(err error) error {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrTransport):
		return failure("Network error while " + a.doing + ".")
	case errors.Is(err, ErrUnauthenticated):
		return failure("Failed to " + a.do + ". Please ensure you are signed in.")
	case errors.Is(err, ErrNotFound):
		return failure("Failed to " + a.do + ": not found.")
	case errors.As(err, &rejected) && rejected.Reason != "":
		return failure(upperFirst(rejected.Reason))
	}
	return failure("Failed to " + a.do + ".")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
