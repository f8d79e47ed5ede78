package models

import "time"

// Slot is one free appointment window within business hours. Slots are
// recomputed per request and never persisted.
type Slot struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Display string    `json:"display"`
}

// BusyInterval is an occupied time range reported by the calendar backend.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookingDetails carries everything needed to create a calendar event for a
// service appointment.
type BookingDetails struct {
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   string    `json:"customerEmail,omitempty"`
	ServiceType     string    `json:"serviceType"`
	Description     string    `json:"description,omitempty"`
	Address         string    `json:"address"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
}

// BookingRecord echoes a created calendar event back to the caller.
type BookingRecord struct {
	EventID  string    `json:"eventId"`
	HTMLLink string    `json:"htmlLink,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Summary  string    `json:"summary"`
}

// CalendarEvent is an upcoming appointment listed for the dashboard.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Summary  string    `json:"summary"`
	Location string    `json:"location,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}
