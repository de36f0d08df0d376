package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"standard mobile", "13812345678", "138****5678"},
		{"landline with area code", "02188889999", "021****9999"},
		{"short number fully starred", "12345", "*****"},
		{"empty", "", ""},
		{"exactly eight digits", "12345678", "123*5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskPhone(tt.phone))
		})
	}
}

func TestMaskPhone_NeverLeaksMiddle(t *testing.T) {
	phone := "13812345678"
	masked := MaskPhone(phone)

	assert.NotEqual(t, phone, masked)
	assert.NotContains(t, masked, "1234567")
	// Masked form keeps the original length, so the UI preview lines up.
	assert.Len(t, masked, len(phone))
	assert.True(t, strings.Contains(masked, "****"))
}

func TestMaskName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"chinese name", "王经理", "王**"},
		{"latin name", "Alice", "A**"},
		{"single rune", "李", "李**"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskName(tt.in))
		})
	}
}
