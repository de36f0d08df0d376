package utils

import (
	"strings"
	"unicode/utf8"
)

// MaskPhone stars out the middle of a phone number, keeping the first
// three and last four characters: 13812345678 -> 138****5678. The
// masked preview must always be produced, never a truncation or the raw
// value; short inputs are fully starred.
func MaskPhone(phone string) string {
	n := utf8.RuneCountInString(phone)
	if phone == "" {
		return ""
	}
	if n < 8 {
		return strings.Repeat("*", n)
	}
	runes := []rune(phone)
	return string(runes[:3]) + strings.Repeat("*", n-7) + string(runes[n-4:])
}

// MaskName keeps the first rune of a contact-person name: 王经理 -> 王**.
func MaskName(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	return string(runes[0]) + "**"
}
