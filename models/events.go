package models

import "time"

// Inbound channel event kinds delivered by the voice platform.
const (
	EventCallStarted  = "call_started"
	EventCallEnded    = "call_ended"
	EventTranscript   = "transcript"
	EventFunctionCall = "function_call"
)

// Outbound channel message kinds sent back to the voice platform.
const (
	MessageConfig             = "config"
	MessageFunctionCallResult = "function_call_result"
	MessageError              = "error"
)

// InboundEvent is one message received on the real-time call channel.
type InboundEvent struct {
	Type         string         `json:"type"`
	CallID       string         `json:"call_id,omitempty"`
	Transcript   string         `json:"transcript,omitempty"`
	Speaker      string         `json:"speaker,omitempty"`
	FunctionName string         `json:"function_name,omitempty"`
	Arguments    map[string]any `json:"arguments,omitempty"`
}

// ConfigMessage carries the agent definition out on call start.
type ConfigMessage struct {
	Type  string `json:"type"`
	Agent any    `json:"agent"`
}

// FunctionResultMessage answers exactly one function_call event.
type FunctionResultMessage struct {
	Type         string `json:"type"`
	FunctionName string `json:"function_name"`
	Result       any    `json:"result"`
}

// ErrorMessage reports a per-message failure without closing the channel.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// CallAnalytics is the call-lifecycle record captured from the platform
// webhook when a call ends.
type CallAnalytics struct {
	RecordID            string    `json:"recordId"`
	CallID              string    `json:"callId"`
	DurationSeconds     int       `json:"duration"`
	EndedBy             string    `json:"endedBy,omitempty"`
	DisconnectionReason string    `json:"disconnectionReason,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}
