// Package calculator computes bill totals and per-participant shares.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals is the summary of a bill after service charge, tax and discount.
type Totals struct {
	Subtotal      float64
	ServiceCharge float64
	Tax           float64
	Discount      float64
	Total         float64
}

// CalculateTotals applies the bill formula:
//
//	service = subtotal × servicePct / 100
//	tax     = (subtotal + service) × taxPct / 100
//	total   = max(0, subtotal + service + tax − discount)
//
// Tax compounds on the service charge. The total never goes below zero.
func CalculateTotals(subtotal, servicePct, taxPct, discount float64) Totals {
	sub := decimal.NewFromFloat(subtotal)
	service := sub.Mul(decimal.NewFromFloat(servicePct)).Div(hundred)
	tax := sub.Add(service).Mul(decimal.NewFromFloat(taxPct)).Div(hundred)
	total := sub.Add(service).Add(tax).Sub(decimal.NewFromFloat(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:      sub.InexactFloat64(),
		ServiceCharge: service.InexactFloat64(),
		Tax:           tax.InexactFloat64(),
		Discount:      discount,
		Total:         total.InexactFloat64(),
	}
}

// BillTotals computes Totals from a bill's items and settings.
func BillTotals(bill *models.Bill) Totals {
	return CalculateTotals(itemSubtotal(bill.Items).InexactFloat64(), bill.ServiceCharge, bill.TaxRate, bill.Discount)
}

// LineTotal returns amount × quantity rounded to cents.
func LineTotal(amount float64, quantity int) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(int64(quantity))).Round(2).InexactFloat64()
}

// Subtotal sums line totals.
func Subtotal(lineTotals ...float64) float64 {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(decimal.NewFromFloat(t))
	}
	return sum.InexactFloat64()
}

func itemSubtotal(items []models.BillItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.Total))
	}
	return sum
}
