package models

import (
	"fmt"
	"slices"
	"strings"
)

// Visibility controls who can reach a bill through its share token.
type Visibility string

const (
	// VisibilityPrivate bills are visible to their owner only.
	VisibilityPrivate Visibility = "PRIVATE"
	// VisibilityReadOnly bills can be viewed by anyone holding the share link.
	VisibilityReadOnly Visibility = "READ_ONLY"
	// VisibilityPublic bills can be viewed and edited by anyone holding the share link.
	VisibilityPublic Visibility = "PUBLIC"
)

// Visibilities lists every valid visibility in display order.
var Visibilities = []Visibility{VisibilityPrivate, VisibilityReadOnly, VisibilityPublic}

// Shared reports whether the visibility requires a share token.
func (v Visibility) Shared() bool {
	return v == VisibilityReadOnly || v == VisibilityPublic
}

// Currency describes one supported currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies lists every supported currency in display order.
var Currencies = []Currency{
	{Code: "RM", Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
}

const (
	// DefaultCurrency is used when a bill is created without a currency.
	DefaultCurrency = "RM"
	// DefaultVisibility is used when a bill is created without a visibility.
	DefaultVisibility = VisibilityPrivate
)

// CurrencyCodes returns the valid currency codes in display order.
func CurrencyCodes() []string {
	codes := make([]string, len(Currencies))
	for i, c := range Currencies {
		codes[i] = c.Code
	}
	return codes
}

// VisibilityValues returns the valid visibilities as strings in display order.
func VisibilityValues() []string {
	values := make([]string, len(Visibilities))
	for i, v := range Visibilities {
		values[i] = string(v)
	}
	return values
}

// ParseCurrency upper-cases s and checks it against Currencies.
func ParseCurrency(s string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if !slices.Contains(CurrencyCodes(), code) {
		return "", fmt.Errorf("invalid currency: %s. Valid options: %s", code, strings.Join(CurrencyCodes(), ", "))
	}
	return code, nil
}

// ParseVisibility upper-cases s and checks it against Visibilities.
// Hyphens are accepted in place of underscores ("read-only").
func ParseVisibility(s string) (Visibility, error) {
	value := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	if !slices.Contains(VisibilityValues(), value) {
		return "", fmt.Errorf("invalid visibility: %s. Valid options: %s", value, strings.Join(VisibilityValues(), ", "))
	}
	return Visibility(value), nil
}

// CurrencySymbol returns the display symbol for code, or code itself when unknown.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code
}

// ParseAssignees splits a comma-separated list of names, trims each one,
// drops empty entries and keeps at most quantity names.
func ParseAssignees(assignedTo string, quantity int) []string {
	var names []string
	for _, name := range strings.Split(assignedTo, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(names) == quantity {
			break
		}
		names = append(names, name)
	}
	return names
}
