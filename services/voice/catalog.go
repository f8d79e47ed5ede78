// File: services/voice/catalog.go
package voice

import "frontdesk/models"

// serviceCatalog is the fixed set of offered services. Keys match the
// serviceType enum used by the agent functions.
var serviceCatalog = map[models.ServiceType]models.ServiceInfo{
	models.ServiceEmergency: {
		Name:          "Emergency Plumbing",
		Description:   "24/7 emergency service for burst pipes, major leaks, and sewage backups",
		EstimatedTime: "1-2 hours response time",
	},
	models.ServiceDrain: {
		Name:          "Drain Cleaning",
		Description:   "Professional drain cleaning and clog removal",
		EstimatedTime: "1 hour service call",
	},
	models.ServiceWaterHeater: {
		Name:          "Water Heater Services",
		Description:   "Repair, replacement, and installation of water heaters",
		EstimatedTime: "2-4 hours depending on service",
	},
	models.ServiceLeak: {
		Name:          "Leak Detection & Repair",
		Description:   "Finding and fixing hidden leaks in your plumbing system",
		EstimatedTime: "1-2 hours",
	},
	models.ServiceInstallation: {
		Name:          "Fixture Installation",
		Description:   "Installation of faucets, toilets, sinks, and other fixtures",
		EstimatedTime: "1-3 hours depending on fixture",
	},
	models.ServiceGeneral: {
		Name:          "General Plumbing",
		Description:   "General plumbing maintenance and repairs",
		EstimatedTime: "1-2 hours",
	},
}

// GetService looks up one catalog entry.
func GetService(t models.ServiceType) (models.ServiceInfo, bool) {
	info, ok := serviceCatalog[t]
	return info, ok
}

// ListServices returns a copy of the full catalog.
func ListServices() map[models.ServiceType]models.ServiceInfo {
	out := make(map[models.ServiceType]models.ServiceInfo, len(serviceCatalog))
	for k, v := range serviceCatalog {
		out[k] = v
	}
	return out
}
