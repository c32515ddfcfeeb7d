package domain

import (
	"strings"
	"time"
)

// Home is a persisted rental listing.
type Home struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Guests      int       `json:"guests"`
	Beds        int       `json:"beds"`
	Baths       int       `json:"baths"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewHome is the payload submitted by the listing form and accepted by
// POST /api/homes. Image is the uploaded picture's public URL, or "".
type NewHome struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Guests      int    `json:"guests"`
	Beds        int    `json:"beds"`
	Baths       int    `json:"baths"`
	Image       string `json:"image"`
}

// Field names as they appear in the form and on the wire.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldGuests      = "guests"
	FieldBeds        = "beds"
	FieldBaths       = "baths"
)

// ListingFields is the display order of the form fields.
var ListingFields = []string{FieldTitle, FieldDescription, FieldPrice, FieldGuests, FieldBeds, FieldBaths}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// ValidateText reports the message for a required trimmed string, or "".
func ValidateText(field, v string) string {
	if strings.TrimSpace(v) == "" {
		return field + " is a required field"
	}
	return ""
}

// ValidateCount reports the message for a positive integer field, or "".
func ValidateCount(field string, v int) string {
	if v < 1 {
		return field + " must be greater than or equal to 1"
	}
	return ""
}

// Validate checks the six scalar fields. Image is optional.
func (h NewHome) Validate() FieldErrors {
	errs := FieldErrors{}
	add := func(field, msg string) {
		if msg != "" {
			errs[field] = msg
		}
	}
	add(FieldTitle, ValidateText(FieldTitle, h.Title))
	add(FieldDescription, ValidateText(FieldDescription, h.Description))
	add(FieldPrice, ValidateCount(FieldPrice, h.Price))
	add(FieldGuests, ValidateCount(FieldGuests, h.Guests))
	add(FieldBeds, ValidateCount(FieldBeds, h.Beds))
	add(FieldBaths, ValidateCount(FieldBaths, h.Baths))
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Normalized returns h with surrounding whitespace trimmed from the text fields.
func (h NewHome) Normalized() NewHome {
	h.Title = strings.TrimSpace(h.Title)
	h.Description = strings.TrimSpace(h.Description)
	h.Image = strings.TrimSpace(h.Image)
	return h
}
