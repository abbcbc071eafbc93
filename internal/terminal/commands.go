package terminal

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/api"
)

const helpText = `Available commands:
• help - Show this help message
• list - List all bills
• create <name> [reference] [currency] [visibility] - Create new bill
• add <billRef> <itemName> <amount> [quantity] - Add item to bill
• remove <billRef> <itemIndex> - Remove item by index (use show to see indices)
• edit <billRef> <field> <value> - Edit bill settings
• tax <billRef> <percentage> - Set tax rate
• service <billRef> <percentage> - Set service charge
• voucher <billRef> <amount> - Set discount/voucher (alias: discount)
• show <billRef> - Show bill details
• clear - Clear terminal

Batch commands:
• Separate multiple commands with semicolons (;)
• Paste multiple commands with newlines (multiline)
• Multiple add commands can be chained together

Examples:
• create "Dinner Bill" DINNER2024 RM public
• create "Lunch" - USD (generates a reference)
• add DB123456 "Pizza" 25.50 2
• remove DB123456 1 (removes first item)
• add DB123456 "Item 1" 10.00 1 add DB123456 "Item 2" 15.00 2
• tax DB123456 10
• service DB123456 5
• voucher DB123456 15.00
• edit DB123456 currency USD
• show DB123456`

func system(text string) Message { return Message{Kind: KindSystem, Text: text} }
func success(text string) Message { return Message{Kind: KindSuccess, Text: text} }

func (in *Interpreter) help(context.Context, []string) (Message, error) {
	return system(helpText), nil
}

func (in *Interpreter) list(ctx context.Context, _ []string) (Message, error) {
	bills, err := in.api.ListBills(ctx)
	if err != nil {
		return Message{}, actFetchBills.fail(err)
	}
	if len(bills) == 0 {
		return system("No bills found."), nil
	}

	lines := make([]string, len(bills))
	for i, bill := range bills {
		lines[i] = fmt.Sprintf("• %s (%s) - %s - %s", bill.Name, bill.Reference, bill.Currency, bill.Visibility)
	}
	return system("Found " + pluralize(len(bills), "bill") + ":\n" + strings.Join(lines, "\n")), nil
}

func (in *Interpreter) create(ctx context.Context, args []string) (Message, error) {
	if len(args) == 0 {
		return Message{}, failure("Usage: create <name> [reference] [currency] [visibility]\nExample: create \"Dinner Bill\" DINNER2024 RM public")
	}

	req := &api.CreateBillRequest{
		Name:       args[0],
		Currency:   models.DefaultCurrency,
		Visibility: string(models.DefaultVisibility),
	}
	if len(args) > 1 && args[1] != "-" {
		req.Reference = args[1]
	}
	if len(args) > 2 {
		currency, err := models.ParseCurrency(args[2])
		if err != nil {
			return Message{}, failure(upperFirst(err.Error()))
		}
		req.Currency = currency
	}
	if len(args) > 3 {
		visibility, err := models.ParseVisibility(args[3])
		if err != nil {
			return Message{}, failure(upperFirst(err.Error()))
		}
		req.Visibility = string(visibility)
	}

	bill, err := in.api.CreateBill(ctx, req)
	if err != nil {
		return Message{}, actCreateBill.fail(err)
	}
	return success(fmt.Sprintf("✓ Bill created successfully!\nName: %s\nReference: %s\nCurrency: %s\nVisibility: %s",
		bill.Name, bill.Reference, bill.Currency, bill.Visibility)), nil
}

func (in *Interpreter) add(ctx context.Context, args []string) (Message, error) {
	if len(args) < 3 {
		return Message{}, failure("Usage: add <billRef> <itemName> <amount> [quantity]\nExample: add DB123456 \"Pizza\" 25.50 2")
	}

	amount, ok := parseNumber(args[2])
	if !ok || amount <= 0 {
		return Message{}, failure("Amount must be a valid positive number")
	}
	quantity := 1
	if len(args) > 3 {
		q, err := strconv.Atoi(args[3])
		if err != nil || q <= 0 {
			return Message{}, failure("Quantity must be a valid positive integer")
		}
		quantity = q
	}

	bill, err := in.findBill(ctx, args[0], actAddItem)
	if err != nil {
		return Message{}, err
	}

	item, err := in.api.AddItem(ctx, &api.AddItemRequest{
		BillID:   bill.ID,
		Name:     args[1],
		Amount:   amount,
		Quantity: quantity,
	})
	if err != nil {
		return Message{}, actAddItem.fail(err)
	}
	return success(fmt.Sprintf("✓ Item added successfully!\nItem: %s\nAmount: %s × %d = %s\nAdded to: %s (%s)",
		item.Name, formatNumber(item.Amount), item.Quantity, formatNumber(item.Total), bill.Name, bill.Reference)), nil
}

func (in *Interpreter) remove(ctx context.Context, args []string) (Message, error) {
	if len(args) < 2 {
		return Message{}, failure("Usage: remove <billRef> <itemIndex>\nExample: remove DB123456 1 (removes first item)\nTip: Use \"show <billRef>\" to see item indices")
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return Message{}, failure("Item index must be a positive number starting from 1")
	}

	bill, err := in.findBill(ctx, args[0], actRemoveItem)
	if err != nil {
		return Message{}, err
	}
	if len(bill.Items) == 0 {
		return Message{}, failure("This bill has no items to remove.")
	}
	if index < 1 || index > len(bill.Items) {
		return Message{}, failure(fmt.Sprintf("Invalid item index: %d. This bill has %s (valid range 1-%d).",
			index, pluralize(len(bill.Items), "item"), len(bill.Items)))
	}

	item := bill.Items[index-1]
	if err := in.api.DeleteItem(ctx, bill.ID, item.ID); err != nil {
		return Message{}, actRemoveItem.fail(err)
	}
	return success(fmt.Sprintf("✓ Item removed successfully!\nItem: %s (%s × %d)\nRemoved from: %s (%s)",
		item.Name, formatNumber(item.Amount), item.Quantity, bill.Name, bill.Reference)), nil
}

// editFields maps lower-cased field names to their canonical spelling.
var editFields = map[string]string{
	"currency":      "currency",
	"visibility":    "visibility",
	"servicecharge": "serviceCharge",
	"taxrate":       "taxRate",
	"discount":      "discount",
}

const editFieldList = "currency, visibility, serviceCharge, taxRate, discount"

func (in *Interpreter) edit(ctx context.Context, args []string) (Message, error) {
	if len(args) < 3 {
		return Message{}, failure("Usage: edit <billRef> <field> <value>\nFields: " + editFieldList +
			"\nTip: Use dedicated commands: tax, service, voucher\nExample: edit DB123456 currency USD")
	}

	field, ok := editFields[strings.ToLower(args[1])]
	if !ok {
		return Message{}, failure("Invalid field: " + args[1] + ". Valid fields: " + editFieldList)
	}

	var req api.UpdateBillRequest
	var shown string
	switch field {
	case "currency":
		currency, err := models.ParseCurrency(args[2])
		if err != nil {
			return Message{}, failure(upperFirst(err.Error()))
		}
		req.Currency, shown = &currency, currency
	case "visibility":
		visibility, err := models.ParseVisibility(args[2])
		if err != nil {
			return Message{}, failure(upperFirst(err.Error()))
		}
		value := string(visibility)
		req.Visibility, shown = &value, value
	default:
		value, ok := parseNumber(args[2])
		if !ok || value < 0 {
			return Message{}, failure(field + " must be a valid positive number")
		}
		switch field {
		case "serviceCharge":
			req.ServiceCharge = &value
		case "taxRate":
			req.TaxRate = &value
		case "discount":
			req.Discount = &value
		}
		shown = formatNumber(value)
	}

	bill, err := in.findBill(ctx, args[0], actUpdateBill)
	if err != nil {
		return Message{}, err
	}
	req.BillID = bill.ID
	if _, err := in.api.UpdateBill(ctx, &req); err != nil {
		return Message{}, actUpdateBill.fail(err)
	}
	return success(fmt.Sprintf("✓ Bill updated successfully!\n%s: %s\nBill: %s (%s)", field, shown, bill.Name, bill.Reference)), nil
}

// amountCommand describes one of the single-value setters: tax, service, voucher.
type amountCommand struct {
	usage   string
	invalid string
	title   string
	act     action
	set     func(req *api.UpdateBillRequest, value float64)
	show    func(bill *api.Bill, value float64) string
}

var (
	taxCommand = amountCommand{
		usage:   "Usage: tax <billRef> <percentage>\nExample: tax DB123456 10",
		invalid: "Tax rate must be a valid positive number (percentage)",
		title:   "✓ Tax rate updated successfully!",
		act:     actTaxRate,
		set:     func(req *api.UpdateBillRequest, v float64) { req.TaxRate = &v },
		show:    func(_ *api.Bill, v float64) string { return "Tax Rate: " + formatNumber(v) + "%" },
	}
	serviceCommand = amountCommand{
		usage:   "Usage: service <billRef> <percentage>\nExample: service DB123456 5",
		invalid: "Service charge must be a valid positive number (percentage)",
		title:   "✓ Service charge updated successfully!",
		act:     actService,
		set:     func(req *api.UpdateBillRequest, v float64) { req.ServiceCharge = &v },
		show:    func(_ *api.Bill, v float64) string { return "Service Charge: " + formatNumber(v) + "%" },
	}
	voucherCommand = amountCommand{
		usage:   "Usage: voucher <billRef> <amount>\nExample: voucher DB123456 15.00",
		invalid: "Voucher/discount amount must be a valid positive number",
		title:   "✓ Voucher/discount updated successfully!",
		act:     actVoucher,
		set:     func(req *api.UpdateBillRequest, v float64) { req.Discount = &v },
		show: func(bill *api.Bill, v float64) string {
			return "Discount: " + models.CurrencySymbol(bill.Currency) + strconv.FormatFloat(v, 'f', 2, 64)
		},
	}
)

func (in *Interpreter) amountSetter(c amountCommand) handlerFunc {
	return func(ctx context.Context, args []string) (Message, error) {
		if len(args) < 2 {
			return Message{}, failure(c.usage)
		}
		value, ok := parseNumber(args[1])
		if !ok || value < 0 {
			return Message{}, failure(c.invalid)
		}

		bill, err := in.findBill(ctx, args[0], c.act)
		if err != nil {
			return Message{}, err
		}
		req := &api.UpdateBillRequest{BillID: bill.ID}
		c.set(req, value)
		if _, err := in.api.UpdateBill(ctx, req); err != nil {
			return Message{}, c.act.fail(err)
		}
		return success(fmt.Sprintf("%s\n%s\nBill: %s (%s)", c.title, c.show(bill, value), bill.Name, bill.Reference)), nil
	}
}

func (in *Interpreter) show(ctx context.Context, args []string) (Message, error) {
	if len(args) == 0 {
		return Message{}, failure("Usage: show <billRef>\nExample: show DB123456")
	}
	bill, err := in.findBill(ctx, args[0], actShowBill)
	if err != nil {
		return Message{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bill Details: %s\nReference: %s\nCurrency: %s\nVisibility: %s\nCreated: %s\n\n",
		bill.Name, bill.Reference, bill.Currency, bill.Visibility, time.Unix(bill.CreatedAt, 0).UTC().Format(time.DateOnly))

	fmt.Fprintf(&b, "Items (%d):\n", len(bill.Items))
	if len(bill.Items) == 0 {
		b.WriteString("  No items yet\n")
	}
	lineTotals := make([]float64, len(bill.Items))
	for i, item := range bill.Items {
		lineTotals[i] = item.Total
		fmt.Fprintf(&b, "  %d. %s: %s × %d = %s", i+1, item.Name, formatNumber(item.Amount), item.Quantity, formatNumber(item.Total))
		if item.AssignedTo != "" {
			fmt.Fprintf(&b, " (%s)", item.AssignedTo)
		}
		b.WriteByte('\n')
	}

	totals := calculator.CalculateTotals(calculator.Subtotal(lineTotals...), bill.ServiceCharge, bill.TaxRate, bill.Discount)
	fmt.Fprintf(&b, "\nSummary:\n  Subtotal: %.2f\n  Service Charge (%s%%): %.2f\n  Tax (%s%%): %.2f\n  Discount: -%.2f\n  Total: %.2f",
		totals.Subtotal, formatNumber(bill.ServiceCharge), totals.ServiceCharge,
		formatNumber(bill.TaxRate), totals.Tax, totals.Discount, totals.Total)
	return system(b.String()), nil
}

// parseNumber accepts finite decimal numbers only.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// formatNumber prints v without trailing zeros: 25.5, 51, 0.3.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
