package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// referencePattern is the accepted shape of a caller-supplied bill reference.
var referencePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{2,32}$`)

const (
	maxReferenceInitials = 8
	maxReferenceAttempts = 10
)

// generateReference builds a reference from the owner's initial, the initial
// of every word of the bill name and the last six digits of the millisecond clock,
// e.g. "Dave" + "Friday Dinner" -> "DFD123456".
func generateReference(ownerName, billName string, now time.Time) string {
	var b strings.Builder
	if r, ok := firstASCIIAlnum(ownerName); ok {
		b.WriteRune(r)
	}
	initials := 0
	for _, word := range strings.Fields(billName) {
		if initials == maxReferenceInitials {
			break
		}
		if r, ok := firstASCIIAlnum(word); ok {
			b.WriteRune(r)
			initials++
		}
	}
	millis := fmt.Sprintf("%06d", now.UnixMilli()%1_000_000)
	b.WriteString(millis)
	return b.String()
}

// withSuffix returns the reference for the given collision attempt:
// attempt 1 is ref itself, attempt 2 is ref-2 and so on.
func withSuffix(ref string, attempt int) string {
	if attempt <= 1 {
		return ref
	}
	return fmt.Sprintf("%s-%d", ref, attempt)
}

// firstASCIIAlnum returns the upper-cased first rune of s if it is an ASCII letter or digit.
func firstASCIIAlnum(s string) (rune, bool) {
	r, _ := utf8.DecodeRuneInString(s)
	if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return unicode.ToUpper(r), true
	}
	return 0, false
}

// newShareToken returns 32 random bytes, hex encoded.
func newShareToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
