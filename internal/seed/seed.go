// Package seed holds the deterministic data served when the provider cannot answer.
// Every function returns fresh values; callers may modify them freely.
package seed

import (
	"fmt"
	"strings"

	"github.com/bassista/go_railops/internal/model"
)

// DefaultHub names the hub the seed trains depart from.
const DefaultHub = "New Delhi"

func Trains() []model.TrainRecord {
	return []model.TrainRecord{
		{ID: "12055", Name: "New Delhi - Dehradun Jan Shatabdi Express", Route: "New Delhi → Dehradun", Status: model.StatusOnTime, DelayMinutes: 0, Speed: 110, Location: "Meerut City", Passengers: 850, NextStop: "Haridwar", ETA: "14:25", StatusColor: model.ColorSuccess},
		{ID: "12309", Name: "Rajdhani Express", Route: "New Delhi → Patna", Status: model.StatusDelayed, DelayMinutes: 12, Speed: 95, Location: "Kanpur Central", Passengers: 620, NextStop: "Allahabad", ETA: "16:40", StatusColor: model.ColorWarning},
		{ID: "12951", Name: "Mumbai Rajdhani Express", Route: "New Delhi → Mumbai", Status: model.StatusCritical, DelayMinutes: 45, Speed: 0, Location: "Mathura", Passengers: 1200, NextStop: model.NextStopSignalClearance, ETA: model.ETAPending, StatusColor: model.ColorDestructive},
		{ID: "12002", Name: "New Delhi - Bhopal Shatabdi Express", Route: "New Delhi → Bhopal", Status: model.StatusOnTime, DelayMinutes: 0, Speed: 100, Location: "Agra Cantt", Passengers: 700, NextStop: "Jhansi", ETA: "15:30", StatusColor: model.ColorSuccess},
		{ID: "12423", Name: "Dibrugarh Rajdhani Express", Route: "New Delhi → Dibrugarh", Status: model.StatusDelayed, DelayMinutes: 20, Speed: 90, Location: "Moradabad", Passengers: 900, NextStop: "Bareilly", ETA: "18:00", StatusColor: model.ColorWarning},
		{ID: "12295", Name: "Sanghamitra Express", Route: "New Delhi → Bangalore", Status: model.StatusOnTime, DelayMinutes: 0, Speed: 105, Location: "Jhansi", Passengers: 950, NextStop: "Bhopal", ETA: "20:15", StatusColor: model.ColorSuccess},
		{ID: "12621", Name: "Tamil Nadu Express", Route: "New Delhi → Chennai", Status: model.StatusDelayed, DelayMinutes: 15, Speed: 85, Location: "Gwalior", Passengers: 800, NextStop: "Nagpur", ETA: "22:30", StatusColor: model.ColorWarning},
		{ID: "12401", Name: "Magadh Express", Route: "New Delhi → Patna", Status: model.StatusOnTime, DelayMinutes: 0, Speed: 100, Location: "Aligarh", Passengers: 700, NextStop: "Tundla", ETA: "16:50", StatusColor: model.ColorSuccess},
		{ID: "12301", Name: "Howrah Rajdhani Express", Route: "New Delhi → Howrah", Status: model.StatusCritical, DelayMinutes: 50, Speed: 0, Location: "Allahabad", Passengers: 1100, NextStop: model.NextStopSignalClearance, ETA: model.ETAPending, StatusColor: model.ColorDestructive},
		{ID: "12019", Name: "Howrah - Ranchi Shatabdi Express", Route: "New Delhi → Ranchi", Status: model.StatusOnTime, DelayMinutes: 0, Speed: 115, Location: "Varanasi", Passengers: 650, NextStop: "Daltonganj", ETA: "17:45", StatusColor: model.ColorSuccess},
	}
}

// TrainIDs returns the ids of the seed trains, in order.
func TrainIDs() []string {
	trains := Trains()
	ids := make([]string, len(trains))
	for i, t := range trains {
		ids[i] = t.ID
	}
	return ids
}

func Analytics() model.Analytics {
	return model.Analytics{
		PerformanceTrends: model.PerformanceTrends{
			OnTimePercentage:    65,
			AverageDelay:        10,
			CriticalIncidents:   2,
			AverageSpeed:        95,
			PassengerLoadFactor: 75,
		},
		ScheduleAnalysis: []model.ScheduleEntry{
			{ID: "12055", Name: "New Delhi - Dehradun Jan Shatabdi Express", ScheduledDeparture: "14:00", ActualDeparture: "14:00", DepartureDeviation: 0, ReliabilityScore: 95},
			{ID: "12309", Name: "Rajdhani Express", ScheduledDeparture: "15:30", ActualDeparture: "15:42", DepartureDeviation: 12, ReliabilityScore: 85},
			{ID: "12951", Name: "Mumbai Rajdhani Express", ScheduledDeparture: "16:00", ActualDeparture: "16:45", DepartureDeviation: 45, ReliabilityScore: 70},
			{ID: "12002", Name: "New Delhi - Bhopal Shatabdi Express", ScheduledDeparture: "13:00", ActualDeparture: "13:00", DepartureDeviation: 0, ReliabilityScore: 90},
			{ID: "12423", Name: "Dibrugarh Rajdhani Express", ScheduledDeparture: "17:00", ActualDeparture: "17:20", DepartureDeviation: 20, ReliabilityScore: 80},
			{ID: "12295", Name: "Sanghamitra Express", ScheduledDeparture: "18:00", ActualDeparture: "18:00", DepartureDeviation: 0, ReliabilityScore: 92},
			{ID: "12621", Name: "Tamil Nadu Express", ScheduledDeparture: "20:00", ActualDeparture: "20:15", DepartureDeviation: 15, ReliabilityScore: 82},
			{ID: "12401", Name: "Magadh Express", ScheduledDeparture: "15:00", ActualDeparture: "15:00", DepartureDeviation: 0, ReliabilityScore: 88},
			{ID: "12301", Name: "Howrah Rajdhani Express", ScheduledDeparture: "16:30", ActualDeparture: "17:20", DepartureDeviation: 50, ReliabilityScore: 75},
			{ID: "12019", Name: "Howrah - Ranchi Shatabdi Express", ScheduledDeparture: "14:30", ActualDeparture: "14:30", DepartureDeviation: 0, ReliabilityScore: 93},
		},
	}
}

// Alerts returns the fallback alert feed with sections named after hub.
func Alerts(hub string) []model.Alert {
	return []model.Alert{
		{ID: "1", Title: "Signal Failure", Description: "Junction A-7 experiencing intermittent signal issues", Severity: model.SeverityCritical, Time: "2 min ago", Section: hub + "-Agra"},
		{ID: "2", Title: "Delayed Train", Description: "Express 12345 running 8 minutes behind schedule", Severity: model.SeverityWarning, Time: "5 min ago", Section: hub + "-Pune"},
		{ID: "3", Title: "Maintenance Window", Description: "Scheduled track maintenance in progress", Severity: model.SeverityInfo, Time: "10 min ago", Section: hub + "-Bangalore"},
		{ID: "4", Title: "Platform Congestion", Description: "Platform 3 approaching capacity limits", Severity: model.SeverityWarning, Time: "15 min ago", Section: hub + " Central"},
		{ID: "5", Title: "Track Obstruction", Description: "Debris reported on tracks near Station B", Severity: model.SeverityCritical, Time: "20 min ago", Section: hub + "-Jaipur"},
		{ID: "6", Title: "Power Supply Issue", Description: "Intermittent power supply affecting train operations", Severity: model.SeverityWarning, Time: "25 min ago", Section: hub + "-Lucknow"},
		{ID: "7", Title: "Staff Coordination", Description: "Staff briefing scheduled for next shift", Severity: model.SeverityInfo, Time: "30 min ago", Section: hub + " Central"},
		{ID: "8", Title: "Weather Advisory", Description: "Heavy rain expected, potential delays", Severity: model.SeverityWarning, Time: "35 min ago", Section: hub + "-Mumbai"},
		{ID: "9", Title: "System Update", Description: "Control system software update completed", Severity: model.SeverityInfo, Time: "40 min ago", Section: hub + "-Chennai"},
		{ID: "10", Title: "Emergency Drill", Description: "Scheduled emergency evacuation drill", Severity: model.SeverityInfo, Time: "45 min ago", Section: hub + "-Kolkata"},
	}
}

// Routes returns the fallback route options of train as seen from hub.
func Routes(hub string, train model.TrainRecord) model.RouteOptions {
	_, dest := train.Endpoints()
	if dest == "" {
		dest = "Destination"
	}
	return model.RouteOptions{
		CurrentRoute: model.RouteInfo{
			Stations:      []string{hub, "Agra", "Gwalior", dest},
			Distance:      500,
			EstimatedTime: "6h 0m",
		},
		AlternateRoutes: []model.RouteInfo{
			{
				Stations:      []string{hub, "Mathura", "Jhansi", dest},
				Distance:      550,
				EstimatedTime: "6h 30m",
			},
		},
	}
}

// Maintenance returns the fallback plan for a maintenance request on trainIDs.
func Maintenance(maintenanceType string, trainIDs []string) model.MaintenancePlan {
	affected := append([]string(nil), trainIDs...)
	return model.MaintenancePlan{
		Schedule:       fmt.Sprintf("%s maintenance during the 01:00-05:00 low traffic window", strings.TrimSpace(maintenanceType)),
		Resources:      []string{"Track maintenance crew", "Signal engineers", "Inspection vehicle"},
		Downtime:       "4 hours",
		Protocols:      "Block the affected section, deploy flagmen and run a safety inspection before reopening",
		AffectedTrains: affected,
	}
}
