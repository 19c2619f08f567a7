package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"no-at-sign.com", false},
		{"a@nodot", false},
		{"has space@b.co", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEmail(tt.in), "email %q", tt.in)
	}
}

func TestGetValidator_ReportsJSONNames(t *testing.T) {
	type sample struct {
		Email string `json:"email" validate:"looseemail"`
	}

	err := GetValidator().Struct(sample{Email: "nope"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "email", verrs[0].Field())
	assert.Equal(t, "looseemail", verrs[0].Tag())
}
