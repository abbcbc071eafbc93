package api

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Bill is a bill with its items and the computed summary.
type Bill struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Reference     string      `json:"reference"`
	Visibility    string      `json:"visibility"`
	ShareToken    string      `json:"shareToken,omitempty"`
	Currency      string      `json:"currency"`
	ServiceCharge float64     `json:"serviceCharge"`
	TaxRate       float64     `json:"taxRate"`
	Discount      float64     `json:"discount"`
	OwnerID       string      `json:"ownerId"`
	OwnerName     string      `json:"ownerName"`
	Items         []*BillItem `json:"items"`
	Summary       *Summary    `json:"summary"`
	Shares        []*Share    `json:"shares"`
	Unassigned    float64     `json:"unassigned"`
	CreatedAt     int64       `json:"createdAt"`
	UpdatedAt     int64       `json:"updatedAt"`
}

// BillItem is one line of a bill.
type BillItem struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ItemCode    string        `json:"itemCode,omitempty"`
	Amount      float64       `json:"amount"`
	Quantity    int           `json:"quantity"`
	Total       float64       `json:"total"`
	AssignedTo  string        `json:"assignedTo"`
	Paid        bool          `json:"paid"`
	Verified    bool          `json:"verified"`
	Assignments []*Assignment `json:"assignments"`
}

// Assignment records one unit of an item owed by a participant.
type Assignment struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
}

// Summary is the bill total breakdown.
type Summary struct {
	Subtotal      float64 `json:"subtotal"`
	ServiceCharge float64 `json:"serviceCharge"`
	Tax           float64 `json:"tax"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
}

// Share is what one participant owes, extras included.
type Share struct {
	Participant string  `json:"participant"`
	Subtotal    float64 `json:"subtotal"`
	Extras      float64 `json:"extras"`
	Total       float64 `json:"total"`
}
