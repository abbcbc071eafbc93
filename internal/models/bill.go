package models

// Bill represents a named collection of priced items owned by one user.
// Service charge, tax and discount apply to the bill as a whole.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Name is the human-readable name for the bill (e.g., "Friday Dinner").
	Name string

	// Reference is a short identifier typed by users to address the bill
	// from the command interpreter. Unique per owner.
	Reference string

	// Visibility controls whether the bill can be reached through its share token.
	Visibility Visibility

	// ShareToken is the opaque credential for non-owner access.
	// It is non-empty if and only if Visibility is READ_ONLY or PUBLIC.
	ShareToken string

	// Currency is one of the codes in Currencies.
	Currency string

	// ServiceCharge is the service-charge percentage applied to the subtotal.
	ServiceCharge float64

	// TaxRate is the tax percentage applied to subtotal plus service charge.
	TaxRate float64

	// Discount is a fixed amount subtracted from the final total.
	Discount float64

	// OwnerID is the ID of the user who created the bill.
	OwnerID string

	// OwnerName is the owner's display name. Populated on reads only.
	OwnerName string

	// Items are the bill's line items in creation order.
	Items []BillItem

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last settings change.
	UpdatedAt int64
}

// BillItem represents a single line item on a bill.
type BillItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// BillID is the bill this item belongs to.
	BillID string

	// Name is the display name of the item (e.g., "Pizza").
	Name string

	// ItemCode is an optional external code such as a menu or SKU number.
	ItemCode string

	// Amount is the unit price.
	Amount float64

	// Quantity is the number of units. Always positive.
	Quantity int

	// Total is Amount × Quantity.
	Total float64

	// AssignedTo is the comma-joined summary of assignee names.
	AssignedTo string

	// Paid marks the item as settled.
	Paid bool

	// Verified marks the item as checked against the receipt.
	Verified bool

	// Assignments are the per-unit assignments in insertion order.
	// len(Assignments) never exceeds Quantity.
	Assignments []ItemAssignment

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64
}

// ItemAssignment records that a named participant owes one unit of an item.
type ItemAssignment struct {
	// ID is the unique identifier for the assignment (UUID format).
	ID string

	// ItemID is the item this assignment belongs to.
	ItemID string

	// Name is the participant's name.
	Name string

	// Amount is the item's unit amount at assignment time.
	Amount float64

	// Paid marks this participant's unit as settled.
	Paid bool
}
