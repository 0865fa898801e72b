package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Email  string  `json:"email" binding:"required,email"`
	Phone  string  `json:"phone" binding:"required,phone"`
	Guests int     `json:"numberOfGuests" binding:"required,min=1"`
	Source *string `json:"source,omitempty" binding:"omitempty,oneof=website phone"`
}

func TestStructValidator(t *testing.T) {
	v := NewStructValidator()

	t.Run("valid", func(t *testing.T) {
		form := bookingForm{Email: "a@b.co", Phone: "+1 555 0100 22", Guests: 2}
		assert.NoError(t, v.ValidateStruct(&form))
	})

	t.Run("field messages use json names", func(t *testing.T) {
		bad := "fax"
		err := v.ValidateStruct(bookingForm{Email: "nope", Phone: "12", Source: &bad})
		require.Error(t, err)

		msgs := Messages(err)
		assert.Equal(t, "must be a valid email address", msgs["email"])
		assert.Equal(t, "must be a valid phone number", msgs["phone"])
		assert.Equal(t, "is required", msgs["numberOfGuests"])
		assert.Equal(t, "must be one of: website phone", msgs["source"])
	})

	t.Run("slices validate every element", func(t *testing.T) {
		forms := []bookingForm{{Email: "a@b.co", Phone: "5551234567", Guests: 1}, {}}
		assert.Error(t, v.ValidateStruct(forms))
	})

	t.Run("non-struct values pass", func(t *testing.T) {
		assert.NoError(t, v.ValidateStruct(42))
		assert.NoError(t, v.ValidateStruct(nil))
	})
}

func TestMessages_NonValidationError(t *testing.T) {
	msgs := Messages(errors.New("checkOutDate must be after checkInDate"))
	assert.Equal(t, map[string]string{"request": "checkOutDate must be after checkInDate"}, msgs)
	assert.Nil(t, Messages(nil))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "a: x; b: y", Summary(map[string]string{"b": "y", "a": "x"}))
}
