package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a@x.com"))
	assert.NoError(t, ValidateEmail("  first.last+tag@shop.example.in  "))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("a@b"))
	assert.Error(t, ValidateEmail("a b@x.com"))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("9876543210"))
	assert.NoError(t, ValidatePhone("+919876543210"))
	assert.NoError(t, ValidatePhone("98765 43210"))
	assert.NoError(t, ValidatePhone("98765-43210"))
	assert.Error(t, ValidatePhone(""))
	assert.Error(t, ValidatePhone("12345"))
	assert.Error(t, ValidatePhone("98765432101234567"))
	assert.Error(t, ValidatePhone("phone"))
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("hello", 1, 10))
	assert.NoError(t, ValidateLength("hello", 5, 0))
	assert.Error(t, ValidateLength("  ", 1, 10))
	assert.Error(t, ValidateLength("hello", 6, 0))
	assert.Error(t, ValidateLength("hello", 1, 4))
}

func TestFormatINR_GroupsIndianStyle(t *testing.T) {
	assert.Equal(t, "₹200", FormatINR(200))
	assert.Equal(t, "₹1,23,456", FormatINR(123456))
	assert.Equal(t, "₹1,234.5", FormatINR(1234.50))
}
