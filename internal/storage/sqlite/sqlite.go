// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const billColumns = `
	b.id, b.name, b.reference, b.visibility, b.share_token, b.currency,
	b.service_charge, b.tax_rate, b.discount, b.owner_id, u.display_name,
	b.created_at, b.updated_at`

// CreateBill persists a new bill to the database.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.UpdatedAt == 0 {
		bill.UpdatedAt = bill.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, name, reference, visibility, share_token, currency,
		 service_charge, tax_rate, discount, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.Name, bill.Reference, string(bill.Visibility), nullString(bill.ShareToken), bill.Currency,
		bill.ServiceCharge, bill.TaxRate, bill.Discount, bill.OwnerID, bill.CreatedAt, bill.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateReference, bill.Reference)
	}
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// ListBills retrieves the owner's bills, newest first, including items and assignments.
func (s *SQLiteStore) ListBills(ctx context.Context, ownerID string) ([]*models.Bill, error) {
	bills, err := s.queryBills(ctx,
		"WHERE b.owner_id = ? ORDER BY b.created_at DESC, b.rowid DESC", ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// GetBill retrieves a bill by ID if it belongs to ownerID.
func (s *SQLiteStore) GetBill(ctx context.Context, billID, ownerID string) (*models.Bill, error) {
	return s.getOne(ctx, "WHERE b.id = ? AND b.owner_id = ?", billID, ownerID)
}

// GetBillByShareToken retrieves a bill by its share token.
func (s *SQLiteStore) GetBillByShareToken(ctx context.Context, token string) (*models.Bill, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: bill", storage.ErrNotFound)
	}
	return s.getOne(ctx, "WHERE b.share_token = ?", token)
}

func (s *SQLiteStore) getOne(ctx context.Context, where string, args ...interface{}) (*models.Bill, error) {
	bills, err := s.queryBills(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, fmt.Errorf("%w: bill", storage.ErrNotFound)
	}
	if err := s.loadItems(ctx, bills); err != nil {
		return nil, err
	}
	return bills[0], nil
}

// UpdateBill writes the bill settings.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET currency = ?, visibility = ?, share_token = ?,
		 service_charge = ?, tax_rate = ?, discount = ?, updated_at = ?
		 WHERE id = ?`,
		bill.Currency, string(bill.Visibility), nullString(bill.ShareToken),
		bill.ServiceCharge, bill.TaxRate, bill.Discount, bill.UpdatedAt, bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return expectAffected(res, "bill", bill.ID)
}

// DeleteBill removes a bill by ID if it belongs to ownerID.
// Items and assignments are removed by the foreign key cascade.
func (s *SQLiteStore) DeleteBill(ctx context.Context, billID, ownerID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ? AND owner_id = ?", billID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return expectAffected(res, "bill", billID)
}

// queryBills runs a bill query with the given WHERE/ORDER suffix. Items are not loaded.
func (s *SQLiteStore) queryBills(ctx context.Context, suffix string, args ...interface{}) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+billColumns+" FROM bills b JOIN users u ON u.id = b.owner_id "+suffix,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var visibility string
		var shareToken sql.NullString
		if err := rows.Scan(
			&bill.ID, &bill.Name, &bill.Reference, &visibility, &shareToken, &bill.Currency,
			&bill.ServiceCharge, &bill.TaxRate, &bill.Discount, &bill.OwnerID, &bill.OwnerName,
			&bill.CreatedAt, &bill.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.Visibility = models.Visibility(visibility)
		if shareToken.Valid {
			bill.ShareToken = shareToken.String
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// loadItems attaches items (creation order) and their assignments to bills.
func (s *SQLiteStore) loadItems(ctx context.Context, bills []*models.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	byID := make(map[string]*models.Bill, len(bills))
	args := make([]interface{}, len(bills))
	for i, bill := range bills {
		byID[bill.ID] = bill
		args[i] = bill.ID
	}

	items, err := s.queryItems(ctx,
		"WHERE bill_id IN (?"+repeatPlaceholder(len(bills)-1)+") ORDER BY rowid", args...)
	if err != nil {
		return err
	}
	for _, item := range items {
		bill := byID[item.BillID]
		bill.Items = append(bill.Items, *item)
	}
	return nil
}

// nullString maps "" to SQL NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// expectAffected turns a zero-row write into storage.ErrNotFound.
func expectAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, kind, id)
	}
	return nil
}
