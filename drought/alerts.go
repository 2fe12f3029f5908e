// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package drought

import (
	"strings"

	"github.com/danielhkuo/tanker-portal/models"
)

// Alert categories accepted by FilterAlerts
const (
	CategoryAll     = "all"
	CategoryDrought = "drought"
	CategoryWarning = "warning"
)

// Alerts is the district alert feed.
func Alerts() []models.Alert {
	return []models.Alert{
		{ID: 1, Type: "Drought", Source: "BECO X Sensor", Location: "Panshet Dam",
			Message: "Water level dropped below 30% absolute threshold.", Time: "10 mins ago", Status: "Active"},
		{ID: 2, Type: "Warning", Source: "AI Engine", Location: "Shirur Cluster",
			Message: "WSI predicted to cross 0.8 in next 48 hours.", Time: "1 hour ago", Status: "Sent"},
		{ID: 3, Type: "Drought", Source: "Manual Request", Location: "Bhavani Peth",
			Message: "Urgent tanker request filed by Nagar Parishad.", Time: "2 hours ago", Status: "Pending"},
		{ID: 4, Type: "Warning", Source: "IoT Node", Location: "Varasgaon Sector 4",
			Message: "Sensor MH-04-A offline. Checked heartbeat failure.", Time: "5 hours ago", Status: "Active"},
	}
}

// ValidCategory reports whether c is a known alert category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryAll, CategoryDrought, CategoryWarning:
		return true
	}
	return false
}

// FilterAlerts returns the alerts whose type matches category. An empty
// category means all.
func FilterAlerts(alerts []models.Alert, category string) []models.Alert {
	if category == "" || category == CategoryAll {
		return alerts
	}

	out := []models.Alert{}
	for _, a := range alerts {
		if strings.EqualFold(a.Type, category) {
			out = append(out, a)
		}
	}
	return out
}
