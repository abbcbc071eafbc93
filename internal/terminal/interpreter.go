// Package terminal implements the bill command language: a line is split
// into commands, each command into words, and each verb is dispatched to a
// handler that talks to a BillAPI.
package terminal

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/billsplit/pkg/api"
)

// Welcome is shown when a terminal opens and after clear.
const Welcome = "Bill Manager Terminal v1.0\nType 'help' for available commands."

// BillAPI is the bill backend the interpreter drives. Implementations
// report failures with ErrUnauthenticated, ErrNotFound, ErrTransport or a
// *RejectedError.
type BillAPI interface {
	// ListBills returns the session's bills, newest first, items in creation order.
	ListBills(ctx context.Context) ([]*api.Bill, error)
	CreateBill(ctx context.Context, req *api.CreateBillRequest) (*api.Bill, error)
	AddItem(ctx context.Context, req *api.AddItemRequest) (*api.BillItem, error)
	DeleteItem(ctx context.Context, billID, itemID string) error
	UpdateBill(ctx context.Context, req *api.UpdateBillRequest) (*api.Bill, error)
}

// Kind classifies a message for display.
type Kind string

const (
	KindSystem  Kind = "system"
	KindUser    Kind = "user"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is one entry of the terminal log.
type Message struct {
	Kind Kind
	Text string
}

// Output is what one Execute call produced. When Cleared is set the host
// drops its log before appending Messages.
type Output struct {
	Messages []Message
	Cleared  bool
}

// HasErrors reports whether any command failed.
func (o Output) HasErrors() bool {
	for _, m := range o.Messages {
		if m.Kind == KindError {
			return true
		}
	}
	return false
}

func (o *Output) add(kind Kind, text string) {
	o.Messages = append(o.Messages, Message{Kind: kind, Text: text})
}

// Interpreter executes command lines against a BillAPI. It keeps no state
// between calls.
type Interpreter struct {
	api      BillAPI
	logger   *slog.Logger
	commands map[string]handlerFunc
}

// New creates an Interpreter.
func New(bills BillAPI, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	in := &Interpreter{api: bills, logger: logger}
	in.commands = map[string]handlerFunc{
		"help":     in.help,
		"list":     in.list,
		"create":   in.create,
		"add":      in.add,
		"remove":   in.remove,
		"edit":     in.edit,
		"show":     in.show,
		"tax":      in.amountSetter(taxCommand),
		"service":  in.amountSetter(serviceCommand),
		"voucher":  in.amountSetter(voucherCommand),
		"discount": in.amountSetter(voucherCommand),
	}
	return in
}

// Execute runs every command of line in order. A failing command reports
// an error message and the next command still runs. Execute returns early
// only when ctx is done.
func (in *Interpreter) Execute(ctx context.Context, line string) Output {
	var out Output
	line = strings.TrimSpace(line)
	if line == "" {
		return out
	}
	out.add(KindUser, "$ "+line)

	commands := Tokenize(line)
	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			in.logger.Warn("Batch interrupted", "remaining", len(commands)-i, "error", err)
			out.add(KindError, "Interrupted: "+pluralize(len(commands)-i, "command")+" not run.")
			break
		}
		in.run(ctx, cmd, &out)
	}
	return out
}

func (in *Interpreter) run(ctx context.Context, cmd string, out *Output) {
	parts := ParseArgs(cmd)
	if len(parts) == 0 {
		return
	}
	verb, args := strings.ToLower(parts[0]), parts[1:]
	in.logger.Debug("Executing command", "verb", verb, "args", len(args))

	if verb == "clear" {
		out.Messages = nil
		out.Cleared = true
		out.add(KindSystem, Welcome)
		return
	}

	handler, ok := in.commands[verb]
	if !ok {
		out.add(KindError, "Unknown command: "+verb+". Type 'help' for available commands.")
		return
	}

	msg, err := handler(ctx, args)
	if err != nil {
		in.logger.Debug("Command failed", "verb", verb, "error", err)
		out.add(KindError, err.Error())
		return
	}
	out.Messages = append(out.Messages, msg)
}

type handlerFunc func(ctx context.Context, args []string) (Message, error)

// findBill re-fetches the session's bills and returns the one whose
// reference matches ref exactly.
func (in *Interpreter) findBill(ctx context.Context, ref string, a action) (*api.Bill, error) {
	bills, err := in.api.ListBills(ctx)
	if err != nil {
		if errors.Is(err, ErrTransport) {
			return nil, a.fail(err)
		}
		return nil, actFetchBills.fail(err)
	}
	for _, bill := range bills {
		if bill.Reference == ref {
			return bill, nil
		}
	}
	return nil, failure("Bill with reference " + ref + " not found.\nTip: Use \"list\" to see all available bills.")
}
