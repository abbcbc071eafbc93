package service

import (
	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/api"
)

func toAPIUser(user *models.User) *api.User {
	return &api.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

// toAPIBill converts a bill and attaches its summary and shares.
func toAPIBill(bill *models.Bill) *api.Bill {
	totals := calculator.BillTotals(bill)
	shares := calculator.CalculateShares(bill)

	items := make([]*api.BillItem, len(bill.Items))
	for i := range bill.Items {
		items[i] = toAPIItem(&bill.Items[i])
	}

	people := make([]*api.Share, len(shares.People))
	for i, p := range shares.People {
		people[i] = &api.Share{
			Participant: p.Participant,
			Subtotal:    p.Subtotal,
			Extras:      p.Extras,
			Total:       p.Total,
		}
	}

	return &api.Bill{
		ID:            bill.ID,
		Name:          bill.Name,
		Reference:     bill.Reference,
		Visibility:    string(bill.Visibility),
		ShareToken:    bill.ShareToken,
		Currency:      bill.Currency,
		ServiceCharge: bill.ServiceCharge,
		TaxRate:       bill.TaxRate,
		Discount:      bill.Discount,
		OwnerID:       bill.OwnerID,
		OwnerName:     bill.OwnerName,
		Items:         items,
		Summary: &api.Summary{
			Subtotal:      totals.Subtotal,
			ServiceCharge: totals.ServiceCharge,
			Tax:           totals.Tax,
			Discount:      totals.Discount,
			Total:         totals.Total,
		},
		Shares:     people,
		Unassigned: shares.Unassigned,
		CreatedAt:  bill.CreatedAt,
		UpdatedAt:  bill.UpdatedAt,
	}
}

func toAPIItem(item *models.BillItem) *api.BillItem {
	assignments := make([]*api.Assignment, len(item.Assignments))
	for i, a := range item.Assignments {
		assignments[i] = &api.Assignment{
			ID:     a.ID,
			Name:   a.Name,
			Amount: a.Amount,
			Paid:   a.Paid,
		}
	}
	return &api.BillItem{
		ID:          item.ID,
		Name:        item.Name,
		ItemCode:    item.ItemCode,
		Amount:      item.Amount,
		Quantity:    item.Quantity,
		Total:       item.Total,
		AssignedTo:  item.AssignedTo,
		Paid:        item.Paid,
		Verified:    item.Verified,
		Assignments: assignments,
	}
}
