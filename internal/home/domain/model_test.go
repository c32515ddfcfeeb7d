package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validHome() NewHome {
	return NewHome{Title: "Loft", Description: "Bright loft", Price: 120, Guests: 2, Beds: 1, Baths: 1}
}

func TestNewHome_Validate(t *testing.T) {
	assert.Nil(t, validHome().Validate(), "image is optional")

	h := validHome()
	h.Price = 0
	errs := h.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "price must be greater than or equal to 1", errs[FieldPrice])

	h.Price = 1
	assert.Nil(t, h.Validate())

	blank := NewHome{Title: "   ", Description: "\t"}
	errs = blank.Validate()
	assert.Len(t, errs, 6)
	assert.Equal(t, "title is a required field", errs[FieldTitle])
	assert.Contains(t, errs, FieldBaths)
}

func TestNewHome_Normalized(t *testing.T) {
	h := NewHome{Title: "  Loft ", Description: " Bright ", Image: " http://x/y.png "}.Normalized()
	assert.Equal(t, "Loft", h.Title)
	assert.Equal(t, "Bright", h.Description)
	assert.Equal(t, "http://x/y.png", h.Image)
}
