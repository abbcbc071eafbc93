package api

type GetSharedBillRequest struct {
	ShareToken string `json:"shareToken"`
}

type GetSharedBillResponse struct {
	Bill *Bill `json:"bill"`
}

// UpdateSharedBillRequest edits the amounts of a PUBLIC bill. Currency and
// visibility stay under the owner's control.
type UpdateSharedBillRequest struct {
	ShareToken    string   `json:"shareToken"`
	ServiceCharge *float64 `json:"serviceCharge,omitempty"`
	TaxRate       *float64 `json:"taxRate,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
}

type UpdateSharedBillResponse struct {
	Bill *Bill `json:"bill"`
}

type AddSharedItemRequest struct {
	ShareToken string  `json:"shareToken"`
	Name       string  `json:"name"`
	ItemCode   string  `json:"itemCode,omitempty"`
	Amount     float64 `json:"amount"`
	Quantity   int     `json:"quantity,omitempty"`
}

type AddSharedItemResponse struct {
	Item *BillItem `json:"item"`
}

type UpdateSharedItemRequest struct {
	ShareToken string  `json:"shareToken"`
	ItemID     string  `json:"itemId"`
	AssignedTo *string `json:"assignedTo,omitempty"`
	Paid       *bool   `json:"paid,omitempty"`
	Verified   *bool   `json:"verified,omitempty"`
}

type UpdateSharedItemResponse struct {
	Item *BillItem `json:"item"`
}
