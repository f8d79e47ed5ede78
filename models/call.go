package models

// CallSession holds the conversation state accumulated for one active voice
// call. It is created when the call starts, mutated by transcript extraction
// and function calls, and discarded when the call ends. Fields are filled
// incrementally; completeness is only enforced when a booking is attempted.
type CallSession struct {
	CallID           string `json:"callId,omitempty"`
	CustomerName     string `json:"customerName,omitempty"`
	CustomerPhone    string `json:"customerPhone,omitempty"`
	CustomerEmail    string `json:"customerEmail,omitempty"`
	ServiceType      string `json:"serviceType,omitempty"`
	IssueDescription string `json:"issueDescription,omitempty"`
	Address          string `json:"address,omitempty"`
	PreferredDate    string `json:"preferredDate,omitempty"`
	PreferredTime    string `json:"preferredTime,omitempty"`
	BookingConfirmed bool   `json:"bookingConfirmed"`
}

// SetField overwrites a single session field addressed by its wire key.
// Unknown keys are dropped and reported false. BookingConfirmed is not
// settable this way; it only flips on a successful booking.
func (s *CallSession) SetField(key, value string) bool {
	switch key {
	case "customerName":
		s.CustomerName = value
	case "customerPhone":
		s.CustomerPhone = value
	case "customerEmail":
		s.CustomerEmail = value
	case "serviceType":
		s.ServiceType = value
	case "issueDescription":
		s.IssueDescription = value
	case "address":
		s.Address = value
	case "preferredDate":
		s.PreferredDate = value
	case "preferredTime":
		s.PreferredTime = value
	default:
		return false
	}
	return true
}
