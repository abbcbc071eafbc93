package api

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

// CreateBillRequest creates a bill. Empty Reference generates one; empty
// Currency and Visibility fall back to RM and PRIVATE.
type CreateBillRequest struct {
	Name       string `json:"name"`
	Reference  string `json:"reference,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

// UpdateBillRequest changes bill settings. Nil fields are left untouched.
type UpdateBillRequest struct {
	BillID        string   `json:"billId"`
	Currency      *string  `json:"currency,omitempty"`
	Visibility    *string  `json:"visibility,omitempty"`
	ServiceCharge *float64 `json:"serviceCharge,omitempty"`
	TaxRate       *float64 `json:"taxRate,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	BillID string `json:"billId"`
}

type DeleteBillResponse struct{}

// AddItemRequest adds an item. Quantity 0 means 1.
type AddItemRequest struct {
	BillID   string  `json:"billId"`
	Name     string  `json:"name"`
	ItemCode string  `json:"itemCode,omitempty"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity,omitempty"`
}

type AddItemResponse struct {
	Item *BillItem `json:"item"`
}

// UpdateItemRequest changes item flags and assignees. Nil fields are left untouched.
// A non-nil AssignedTo replaces every assignment of the item.
type UpdateItemRequest struct {
	BillID     string  `json:"billId"`
	ItemID     string  `json:"itemId"`
	AssignedTo *string `json:"assignedTo,omitempty"`
	Paid       *bool   `json:"paid,omitempty"`
	Verified   *bool   `json:"verified,omitempty"`
}

type UpdateItemResponse struct {
	Item *BillItem `json:"item"`
}

type DeleteItemRequest struct {
	BillID string `json:"billId"`
	ItemID string `json:"itemId"`
}

type DeleteItemResponse struct{}
