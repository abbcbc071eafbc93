package service

import (
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/storage"
)

var (
	errAuthRequired = errors.New("authentication required")
	errBillNotFound = errors.New("bill not found")
	errItemNotFound = errors.New("item not found")
)

// storeError maps a storage error to a Connect error. notFound is reported
// for storage.ErrNotFound so callers never learn whether a bill exists but
// belongs to someone else.
func storeError(logger *slog.Logger, op string, err error, notFound error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, notFound)
	case errors.Is(err, storage.ErrDuplicateReference):
		return connect.NewError(connect.CodeAlreadyExists, err)
	}
	logger.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("failed to %s", humanize(op)))
}

// humanize turns an operation name like "UpdateBill" into "update bill".
func humanize(op string) string {
	out := make([]rune, 0, len(op)+2)
	for i, r := range op {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, ' ')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
