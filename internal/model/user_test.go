package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "upper-case domain is lowered", email: "Test@GMAIL.com", expected: "Test@gmail.com"},
		{name: "local part is preserved", email: "MixedCase@Example.COM", expected: "MixedCase@example.com"},
		{name: "already normalized", email: "user@example.com", expected: "user@example.com"},
		{name: "no at sign", email: "not-an-email", expected: "not-an-email"},
		{name: "empty", email: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.email))
		})
	}
}
