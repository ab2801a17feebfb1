package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "ann@example.com", false},
		{"valid with subdomain", "a.b@mail.example.co.jp", false},
		{"empty", "", true},
		{"missing at", "ann.example.com", true},
		{"missing domain", "ann@", true},
		{"missing tld", "ann@example", true},
		{"contains space", "ann @example.com", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDisplayName(t *testing.T) {
	assert.NoError(t, ValidateDisplayName("Ann"))
	assert.NoError(t, ValidateDisplayName("山田 太郎"))
	assert.Error(t, ValidateDisplayName(""))
	assert.Error(t, ValidateDisplayName(strings.Repeat("x", MaxDisplayNameLen+1)))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret123"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
}
