package config

import "fmt"

// AgentFunction describes one callable function exposed to the voice agent,
// in the JSON-schema shape the platform expects.
type AgentFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// AgentPrompt is the full agent definition sent on call start and served to
// the dashboard.
type AgentPrompt struct {
	Name         string          `json:"name"`
	Voice        string          `json:"voice"`
	Language     string          `json:"language"`
	SystemPrompt string          `json:"systemPrompt"`
	Functions    []AgentFunction `json:"functions"`
}

// CompanyInfo is the public company identity served to the dashboard.
type CompanyInfo struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ServiceArea string `json:"serviceArea"`
}

// GetCompanyInfo returns the configured company identity.
func GetCompanyInfo() CompanyInfo {
	return CompanyInfo{
		Name:        AppConfig.CompanyName,
		Phone:       AppConfig.CompanyPhone,
		ServiceArea: AppConfig.ServiceArea,
	}
}

// GetAgentPrompt builds the receptionist agent definition from the configured
// company identity.
func GetAgentPrompt() AgentPrompt {
	company := AppConfig.CompanyName
	area := AppConfig.ServiceArea

	systemPrompt := fmt.Sprintf(`You are a friendly and professional receptionist for %s, a trusted plumbing company serving %s. Your primary role is to:

1. Greet callers warmly and professionally
2. Understand their plumbing needs or emergency
3. Collect necessary information to schedule a service appointment
4. Book appointments in the calendar
5. Provide basic information about our services

PERSONALITY:
- Be warm, empathetic, and professional
- Listen carefully to customer concerns
- Show understanding for plumbing emergencies (they can be stressful!)
- Be efficient but not rushed
- Speak clearly and at a moderate pace

INFORMATION TO COLLECT:
1. Customer's full name
2. Phone number (for callback)
3. Email address (optional, for confirmation)
4. Service address
5. Type of plumbing issue/service needed
6. Urgency level (emergency vs. can be scheduled)
7. Preferred date and time for appointment

SERVICES WE OFFER:
- Emergency plumbing (24/7 for burst pipes, major leaks, sewage backups)
- Drain cleaning and clog removal
- Water heater repair and installation
- Leak detection and repair
- Fixture installation (faucets, toilets, sinks)
- General plumbing maintenance and repairs

BUSINESS HOURS:
- Regular appointments: Monday-Friday, 8 AM - 6 PM
- Saturday: 9 AM - 2 PM
- Emergency service available 24/7

SCRIPT GUIDELINES:
- Opening: "Thank you for calling %s! This is your virtual assistant. How can I help you today?"
- For emergencies: Express urgency and concern, prioritize getting their address and issue details
- For scheduling: Ask about their preferred date and time, then check availability
- Closing: Confirm all details and provide a confirmation message

IMPORTANT RULES:
- Never provide pricing quotes (say "A technician will provide a detailed quote on-site")
- Never make promises about specific arrival times for non-scheduled calls
- For complex issues, offer to have a specialist call them back
- Always confirm the service address before booking
- If unsure about anything, err on the side of helpful and schedule a callback`, company, area, company)

	return AgentPrompt{
		Name:         company + " Receptionist",
		Voice:        "jennifer",
		Language:     "en-US",
		SystemPrompt: systemPrompt,
		Functions:    agentFunctions(),
	}
}

func agentFunctions() []AgentFunction {
	serviceTypes := []string{"emergency", "drain", "waterHeater", "leak", "installation", "general"}

	return []AgentFunction{
		{
			Name:        "book_appointment",
			Description: "Book a plumbing service appointment in the calendar",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"customerName":  map[string]any{"type": "string", "description": "Customer's full name"},
					"customerPhone": map[string]any{"type": "string", "description": "Customer's phone number"},
					"customerEmail": map[string]any{"type": "string", "description": "Customer's email address (optional)"},
					"serviceType":   map[string]any{"type": "string", "enum": serviceTypes, "description": "Type of plumbing service needed"},
					"description":   map[string]any{"type": "string", "description": "Detailed description of the plumbing issue"},
					"address":       map[string]any{"type": "string", "description": "Service address where the plumber should go"},
					"dateTime":      map[string]any{"type": "string", "format": "date-time", "description": "Preferred appointment date and time in ISO format"},
				},
				"required": []string{"customerName", "customerPhone", "serviceType", "address", "dateTime"},
			},
		},
		{
			Name:        "check_availability",
			Description: "Check available appointment slots for a specific date",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date": map[string]any{"type": "string", "format": "date", "description": "The date to check availability for (YYYY-MM-DD format)"},
				},
				"required": []string{"date"},
			},
		},
		{
			Name:        "get_service_info",
			Description: "Get information about the plumbing services we offer",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"serviceType": map[string]any{"type": "string", "enum": serviceTypes, "description": "Specific service to describe (optional)"},
				},
			},
		},
		{
			Name:        "update_customer_info",
			Description: "Record or correct customer details gathered during the call",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"customerName":     map[string]any{"type": "string"},
					"customerPhone":    map[string]any{"type": "string"},
					"customerEmail":    map[string]any{"type": "string"},
					"serviceType":      map[string]any{"type": "string", "enum": serviceTypes},
					"issueDescription": map[string]any{"type": "string"},
					"address":          map[string]any{"type": "string"},
					"preferredDate":    map[string]any{"type": "string"},
					"preferredTime":    map[string]any{"type": "string"},
				},
			},
		},
	}
}
