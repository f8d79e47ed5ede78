package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallSessionSetField(t *testing.T) {
	session := &CallSession{}

	assert.True(t, session.SetField("customerName", "Jane Doe"))
	assert.True(t, session.SetField("preferredDate", "2024-06-10"))
	assert.Equal(t, "Jane Doe", session.CustomerName)
	assert.Equal(t, "2024-06-10", session.PreferredDate)

	// Unknown keys drop silently.
	assert.False(t, session.SetField("favoriteColor", "blue"))

	// The booking flag is not settable through field updates.
	assert.False(t, session.SetField("bookingConfirmed", "true"))
	assert.False(t, session.BookingConfirmed)
}
