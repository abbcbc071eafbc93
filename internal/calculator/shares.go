package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

// PersonShare is one participant's portion of a bill.
type PersonShare struct {
	Participant string
	// Subtotal is the sum of the participant's assignment amounts.
	Subtotal float64
	// Extras is the participant's proportional part of service, tax and discount.
	// Negative when the discount outweighs service and tax.
	Extras float64
	Total  float64
}

// Shares is the per-participant breakdown of a bill.
type Shares struct {
	People []PersonShare
	// Unassigned is the part of the subtotal not covered by any assignment.
	Unassigned float64
}

// CalculateShares distributes a bill among the participants named in its assignments.
// Based on: person_total = person_subtotal × (bill_total / bill_subtotal)
// People appear in the order their names are first seen.
func CalculateShares(bill *models.Bill) Shares {
	subtotal := itemSubtotal(bill.Items)
	if !subtotal.IsPositive() {
		return Shares{}
	}

	totals := BillTotals(bill)
	ratio := decimal.NewFromFloat(totals.Total).Div(subtotal)

	var order []string
	sums := make(map[string]decimal.Decimal)
	assigned := decimal.Zero
	for _, item := range bill.Items {
		for _, a := range item.Assignments {
			amount := decimal.NewFromFloat(a.Amount)
			if _, seen := sums[a.Name]; !seen {
				order = append(order, a.Name)
				sums[a.Name] = decimal.Zero
			}
			sums[a.Name] = sums[a.Name].Add(amount)
			assigned = assigned.Add(amount)
		}
	}

	shares := Shares{
		People:     make([]PersonShare, 0, len(order)),
		Unassigned: subtotal.Sub(assigned).InexactFloat64(),
	}
	for _, name := range order {
		personSubtotal := sums[name]
		personTotal := personSubtotal.Mul(ratio).Round(2)
		shares.People = append(shares.People, PersonShare{
			Participant: name,
			Subtotal:    personSubtotal.InexactFloat64(),
			Extras:      personTotal.Sub(personSubtotal).InexactFloat64(),
			Total:       personTotal.InexactFloat64(),
		})
	}
	return shares
}
