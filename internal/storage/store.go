// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplit/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateReference is returned when an owner already has a bill with the same reference.
	ErrDuplicateReference = errors.New("bill reference already in use")
	// ErrDuplicateEmail is returned when a user with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore defines user persistence operations.
type UserStore interface {
	// CreateUser persists a new user. Returns ErrDuplicateEmail if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrNotFound if no user has the ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// BillStore defines bill, item and assignment persistence operations.
// Owner-scoped methods treat a bill owned by someone else as not found.
type BillStore interface {
	// CreateBill persists a new bill. The bill.ID and CreatedAt fields are
	// populated by the store when empty.
	// Returns ErrDuplicateReference if the owner already uses bill.Reference.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ListBills returns the owner's bills, newest first, with items and assignments.
	ListBills(ctx context.Context, ownerID string) ([]*models.Bill, error)

	// GetBill retrieves one of the owner's bills with items and assignments.
	GetBill(ctx context.Context, billID, ownerID string) (*models.Bill, error)

	// GetBillByShareToken retrieves a bill by its share token regardless of owner.
	GetBillByShareToken(ctx context.Context, token string) (*models.Bill, error)

	// UpdateBill writes the bill's settings (currency, visibility, share token,
	// service charge, tax rate and discount). Items are not touched.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// DeleteBill removes one of the owner's bills together with its items.
	DeleteBill(ctx context.Context, billID, ownerID string) error

	// CreateItem persists a new item on item.BillID.
	CreateItem(ctx context.Context, item *models.BillItem) error

	// GetItem retrieves an item of the given bill with its assignments.
	GetItem(ctx context.Context, billID, itemID string) (*models.BillItem, error)

	// UpdateItem writes the item's paid and verified flags and its AssignedTo summary.
	// When replaceAssignments is set, every existing assignment of the item is
	// deleted and item.Assignments are inserted in the same transaction.
	UpdateItem(ctx context.Context, item *models.BillItem, replaceAssignments bool) error

	// DeleteItem removes an item of the given bill together with its assignments.
	DeleteItem(ctx context.Context, billID, itemID string) error
}

// Store combines every persistence operation.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	BillStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
