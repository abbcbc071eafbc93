package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "billsplit-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createUser(t, store, "alice@example.com", "Alice")

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != alice.ID || got.DisplayName != "Alice" {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("GetUserByID unknown returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := store.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash"))
		if !errors.Is(err, storage.ErrDuplicateEmail) {
			t.Errorf("expected ErrDuplicateEmail, got %v", err)
		}
	})
}

func TestBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := createUser(t, store, "alice@example.com", "Alice")
	bob := createUser(t, store, "bob@example.com", "Bob")

	t.Run("CreateBill generates ID and timestamps", func(t *testing.T) {
		bill := &models.Bill{
			Name: "Dinner", Reference: "D1", Visibility: models.VisibilityPrivate,
			Currency: "RM", OwnerID: alice.ID,
		}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.CreatedAt == 0 || bill.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}

		got, err := store.GetBill(ctx, bill.ID, alice.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.OwnerName != "Alice" {
			t.Errorf("OwnerName = %q, want Alice", got.OwnerName)
		}
		if got.ShareToken != "" {
			t.Errorf("private bill has share token %q", got.ShareToken)
		}
	})

	t.Run("reference is unique per owner", func(t *testing.T) {
		dup := &models.Bill{Name: "Again", Reference: "D1", Currency: "RM", Visibility: models.VisibilityPrivate, OwnerID: alice.ID}
		if err := store.CreateBill(ctx, dup); !errors.Is(err, storage.ErrDuplicateReference) {
			t.Fatalf("expected ErrDuplicateReference, got %v", err)
		}

		other := &models.Bill{Name: "Bob's", Reference: "D1", Currency: "RM", Visibility: models.VisibilityPrivate, OwnerID: bob.ID}
		if err := store.CreateBill(ctx, other); err != nil {
			t.Fatalf("same reference for another owner should succeed: %v", err)
		}
	})

	t.Run("GetBill hides other owners' bills", func(t *testing.T) {
		bills, err := store.ListBills(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if _, err := store.GetBill(ctx, bills[0].ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListBills is newest first and owner scoped", func(t *testing.T) {
		second := &models.Bill{Name: "Lunch", Reference: "L1", Currency: "USD", Visibility: models.VisibilityPrivate, OwnerID: alice.ID}
		if err := store.CreateBill(ctx, second); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		bills, err := store.ListBills(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 2 {
			t.Fatalf("expected 2 bills, got %d", len(bills))
		}
		if bills[0].Reference != "L1" || bills[1].Reference != "D1" {
			t.Errorf("unexpected order: %s, %s", bills[0].Reference, bills[1].Reference)
		}
	})

	t.Run("UpdateBill and share token lookup", func(t *testing.T) {
		bills, _ := store.ListBills(ctx, alice.ID)
		bill := bills[0]
		bill.Visibility = models.VisibilityPublic
		bill.ShareToken = "tok-123"
		bill.TaxRate = 6
		bill.ServiceCharge = 10
		bill.Discount = 2.5
		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		got, err := store.GetBillByShareToken(ctx, "tok-123")
		if err != nil {
			t.Fatalf("GetBillByShareToken failed: %v", err)
		}
		if got.ID != bill.ID || got.TaxRate != 6 || got.ServiceCharge != 10 || got.Discount != 2.5 {
			t.Errorf("unexpected bill: %+v", got)
		}
		if got.Visibility != models.VisibilityPublic {
			t.Errorf("Visibility = %s, want PUBLIC", got.Visibility)
		}

		if _, err := store.GetBillByShareToken(ctx, ""); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("empty token: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteBill", func(t *testing.T) {
		bill := &models.Bill{Name: "Temp", Reference: "TMP", Currency: "RM", Visibility: models.VisibilityPrivate, OwnerID: alice.ID}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		item := &models.BillItem{BillID: bill.ID, Name: "Tea", Amount: 3, Quantity: 1, Total: 3}
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}

		if err := store.DeleteBill(ctx, bill.ID, bob.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("non-owner delete: expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID, alice.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetItem(ctx, bill.ID, item.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("item should be gone with its bill, got %v", err)
		}
	})
}

func TestItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createUser(t, store, "carol@example.com", "Carol")

	bill := &models.Bill{Name: "Party", Reference: "P1", Currency: "RM", Visibility: models.VisibilityPrivate, OwnerID: owner.ID}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	pizza := &models.BillItem{
		BillID: bill.ID, Name: "Pizza", ItemCode: "P-01", Amount: 12.5, Quantity: 2, Total: 25,
		AssignedTo:  "Alice, Bob",
		Assignments: []models.ItemAssignment{{Name: "Alice", Amount: 12.5}, {Name: "Bob", Amount: 12.5}},
	}
	beer := &models.BillItem{BillID: bill.ID, Name: "Beer", Amount: 8, Quantity: 3, Total: 24}
	for _, item := range []*models.BillItem{pizza, beer} {
		if err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	t.Run("items and assignments keep creation order", func(t *testing.T) {
		got, err := store.GetBill(ctx, bill.ID, owner.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if len(got.Items) != 2 || got.Items[0].Name != "Pizza" || got.Items[1].Name != "Beer" {
			t.Fatalf("unexpected items: %+v", got.Items)
		}
		if got.Items[0].ItemCode != "P-01" || got.Items[1].ItemCode != "" {
			t.Errorf("unexpected item codes: %q, %q", got.Items[0].ItemCode, got.Items[1].ItemCode)
		}
		names := got.Items[0].Assignments
		if len(names) != 2 || names[0].Name != "Alice" || names[1].Name != "Bob" {
			t.Errorf("unexpected assignments: %+v", names)
		}
		if subtotal := calculator.BillTotals(got).Subtotal; subtotal != 49 {
			t.Errorf("Subtotal = %v, want 49", subtotal)
		}
	})

	t.Run("UpdateItem replaces assignments", func(t *testing.T) {
		item, err := store.GetItem(ctx, bill.ID, pizza.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		item.AssignedTo = "Dan"
		item.Paid = true
		item.Assignments = []models.ItemAssignment{{Name: "Dan", Amount: 12.5}}
		if err := store.UpdateItem(ctx, item, true); err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}

		got, err := store.GetItem(ctx, bill.ID, pizza.ID)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if !got.Paid || got.AssignedTo != "Dan" {
			t.Errorf("unexpected item: %+v", got)
		}
		if len(got.Assignments) != 1 || got.Assignments[0].Name != "Dan" {
			t.Errorf("unexpected assignments: %+v", got.Assignments)
		}
	})

	t.Run("UpdateItem without replace keeps assignments", func(t *testing.T) {
		item, _ := store.GetItem(ctx, bill.ID, pizza.ID)
		item.Verified = true
		item.Assignments = nil
		if err := store.UpdateItem(ctx, item, false); err != nil {
			t.Fatalf("UpdateItem failed: %v", err)
		}
		got, _ := store.GetItem(ctx, bill.ID, pizza.ID)
		if !got.Verified || len(got.Assignments) != 1 {
			t.Errorf("unexpected item: %+v", got)
		}
	})

	t.Run("DeleteItem", func(t *testing.T) {
		if err := store.DeleteItem(ctx, bill.ID, beer.ID); err != nil {
			t.Fatalf("DeleteItem failed: %v", err)
		}
		if err := store.DeleteItem(ctx, bill.ID, beer.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteItem(ctx, "other-bill", pizza.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("wrong bill: expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepeatPlaceholder(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{1, ", ?"},
		{3, ", ?, ?, ?"},
	}
	for _, tt := range tests {
		if got := repeatPlaceholder(tt.n); got != tt.want {
			t.Errorf("repeatPlaceholder(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
