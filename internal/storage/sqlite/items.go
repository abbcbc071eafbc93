package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// CreateItem persists a new item together with its initial assignments.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.BillItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bill_items (id, bill_id, name, item_code, amount, quantity, total,
		 assigned_to, paid, verified, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.BillID, item.Name, nullString(item.ItemCode), item.Amount, item.Quantity, item.Total,
		item.AssignedTo, item.Paid, item.Verified, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	if err := insertAssignments(ctx, tx, item); err != nil {
		return err
	}

	if err := touchBill(ctx, tx, item.BillID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetItem retrieves an item of the given bill with its assignments.
func (s *SQLiteStore) GetItem(ctx context.Context, billID, itemID string) (*models.BillItem, error) {
	items, err := s.queryItems(ctx, "WHERE bill_id = ? AND id = ?", billID, itemID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: item %s", storage.ErrNotFound, itemID)
	}
	return items[0], nil
}

// UpdateItem writes the item flags and assignee summary, optionally replacing assignments.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.BillItem, replaceAssignments bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE bill_items SET assigned_to = ?, paid = ?, verified = ?
		 WHERE id = ? AND bill_id = ?`,
		item.AssignedTo, item.Paid, item.Verified, item.ID, item.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if err := expectAffected(res, "item", item.ID); err != nil {
		return err
	}

	if replaceAssignments {
		if _, err := tx.ExecContext(ctx, "DELETE FROM item_assignments WHERE item_id = ?", item.ID); err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
		if err := insertAssignments(ctx, tx, item); err != nil {
			return err
		}
	}

	if err := touchBill(ctx, tx, item.BillID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteItem removes an item of the given bill. Assignments cascade.
func (s *SQLiteStore) DeleteItem(ctx context.Context, billID, itemID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM bill_items WHERE id = ? AND bill_id = ?", itemID, billID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if err := expectAffected(res, "item", itemID); err != nil {
		return err
	}

	if err := touchBill(ctx, tx, billID); err != nil {
		return err
	}

	return tx.Commit()
}

// queryItems loads items matching the WHERE/ORDER suffix, then their assignments
// in a second pass so no two result sets are open at once.
func (s *SQLiteStore) queryItems(ctx context.Context, suffix string, args ...interface{}) ([]*models.BillItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bill_id, name, item_code, amount, quantity, total, assigned_to, paid, verified, created_at
		 FROM bill_items `+suffix,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.BillItem
	for rows.Next() {
		item := &models.BillItem{}
		var itemCode sql.NullString
		if err := rows.Scan(&item.ID, &item.BillID, &item.Name, &itemCode, &item.Amount, &item.Quantity,
			&item.Total, &item.AssignedTo, &item.Paid, &item.Verified, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if itemCode.Valid {
			item.ItemCode = itemCode.String
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	rows.Close()

	if err := s.loadAssignments(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// loadAssignments attaches assignments, in insertion order, to items.
func (s *SQLiteStore) loadAssignments(ctx context.Context, items []*models.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	byID := make(map[string]*models.BillItem, len(items))
	args := make([]interface{}, len(items))
	for i, item := range items {
		byID[item.ID] = item
		args[i] = item.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, name, amount, paid FROM item_assignments
		 WHERE item_id IN (?`+repeatPlaceholder(len(items)-1)+`) ORDER BY rowid`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.ItemAssignment
		if err := rows.Scan(&a.ID, &a.ItemID, &a.Name, &a.Amount, &a.Paid); err != nil {
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		item := byID[a.ItemID]
		item.Assignments = append(item.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate assignments: %w", err)
	}
	return nil
}

func insertAssignments(ctx context.Context, tx *sql.Tx, item *models.BillItem) error {
	for i := range item.Assignments {
		a := &item.Assignments[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		a.ItemID = item.ID
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO item_assignments (id, item_id, name, amount, paid) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.ItemID, a.Name, a.Amount, a.Paid,
		); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}
	return nil
}

// touchBill bumps the bill's updated_at after an item change.
func touchBill(ctx context.Context, tx *sql.Tx, billID string) error {
	if _, err := tx.ExecContext(ctx, "UPDATE bills SET updated_at = ? WHERE id = ?", time.Now().Unix(), billID); err != nil {
		return fmt.Errorf("failed to update bill timestamp: %w", err)
	}
	return nil
}
