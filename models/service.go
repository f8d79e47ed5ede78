package models

// ServiceType identifies one of the plumbing services offered.
type ServiceType string

const (
	ServiceEmergency    ServiceType = "emergency"
	ServiceDrain        ServiceType = "drain"
	ServiceWaterHeater  ServiceType = "waterHeater"
	ServiceLeak         ServiceType = "leak"
	ServiceInstallation ServiceType = "installation"
	ServiceGeneral      ServiceType = "general"
)

// ServiceInfo describes one offered service for callers and the dashboard.
type ServiceInfo struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimatedTime"`
}

// AllServiceTypes lists the closed set of service types in catalog order.
func AllServiceTypes() []ServiceType {
	return []ServiceType{
		ServiceEmergency,
		ServiceDrain,
		ServiceWaterHeater,
		ServiceLeak,
		ServiceInstallation,
		ServiceGeneral,
	}
}
