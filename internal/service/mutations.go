package service

import (
	"strings"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/validation"
)

const (
	maxNameLength     = 100
	maxItemCodeLength = 64
)

// amountChanges holds the numeric bill settings a caller may change.
type amountChanges struct {
	serviceCharge *float64
	taxRate       *float64
	discount      *float64
}

// validate records a violation for every negative or non-finite value.
func (c amountChanges) validate(v validation.Violations) {
	if c.serviceCharge != nil {
		validation.NonNegativeFloat("serviceCharge", *c.serviceCharge, v)
	}
	if c.taxRate != nil {
		validation.NonNegativeFloat("taxRate", *c.taxRate, v)
	}
	if c.discount != nil {
		validation.NonNegativeFloat("discount", *c.discount, v)
	}
}

// apply copies the set values onto bill and reports whether anything was set.
func (c amountChanges) apply(bill *models.Bill) bool {
	changed := false
	if c.serviceCharge != nil {
		bill.ServiceCharge = *c.serviceCharge
		changed = true
	}
	if c.taxRate != nil {
		bill.TaxRate = *c.taxRate
		changed = true
	}
	if c.discount != nil {
		bill.Discount = *c.discount
		changed = true
	}
	return changed
}

// newItem validates the input and builds an item for billID.
// A zero quantity means one unit.
func newItem(billID, name, itemCode string, amount float64, quantity int) (*models.BillItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	name = strings.TrimSpace(name)
	itemCode = strings.TrimSpace(itemCode)

	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.MaxLength("name", name, maxNameLength, v)
	validation.MaxLength("itemCode", itemCode, maxItemCodeLength, v)
	validation.PositiveFloat("amount", amount, v)
	validation.PositiveInt("quantity", quantity, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &models.BillItem{
		BillID:   billID,
		Name:     name,
		ItemCode: itemCode,
		Amount:   amount,
		Quantity: quantity,
		Total:    calculator.LineTotal(amount, quantity),
	}, nil
}

// itemChanges holds the item fields a caller may change.
type itemChanges struct {
	assignedTo *string
	paid       *bool
	verified   *bool
}

// apply updates item in place and reports whether its assignments must be replaced.
// Assignees are truncated to the item quantity and each owes one unit amount.
func (c itemChanges) apply(item *models.BillItem) (replaceAssignments bool) {
	if c.paid != nil {
		item.Paid = *c.paid
	}
	if c.verified != nil {
		item.Verified = *c.verified
	}
	if c.assignedTo == nil {
		return false
	}

	names := models.ParseAssignees(*c.assignedTo, item.Quantity)
	item.AssignedTo = strings.Join(names, ", ")
	item.Assignments = make([]models.ItemAssignment, len(names))
	for i, name := range names {
		item.Assignments[i] = models.ItemAssignment{
			ItemID: item.ID,
			Name:   name,
			Amount: item.Amount,
		}
	}
	return true
}
