package model

import "strings"

// Known train statuses. The set is open: the provider may report others.
const (
	StatusOnTime               = "On Time"
	StatusDelayed              = "Delayed"
	StatusCritical             = "Critical"
	StatusRunning              = "Running"
	StatusStopped              = "Stopped"
	StatusHeld                 = "Held at Station"
	StatusResumed              = "Resumed Travel"
	StatusEmergencyStopped     = "Emergency Stopped"
	StatusOnBackupRoute        = "On Backup Route"
	StatusRerouted             = "Rerouted"
	StatusOptimizedRoute       = "Optimized Route"
	StatusScheduledMaintenance = "Scheduled Maintenance"
)

// Status colors understood by the dashboard.
const (
	ColorSuccess     = "success"
	ColorWarning     = "warning"
	ColorDestructive = "destructive"
)

// ETA sentinels.
const (
	ETAPending             = "Pending"
	ETAPendingEmergency    = "Pending Emergency"
	ETARecalculating       = "Recalculating"
	ETARecalculatingBackup = "Recalculating Backup"
	ETAOptimized           = "Optimized"
	ETAOnHold              = "On Hold"
	ETAMaintenance         = "Maintenance Scheduled"
)

// NextStopSignalClearance marks a train waiting for a signal; platform allocation replaces it.
const NextStopSignalClearance = "Signal Clearance"

// RouteSeparator joins stations in a route string.
const RouteSeparator = " → "

// TrainRecord is the current known state of one train.
type TrainRecord struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Route        string `json:"route" validate:"required"`
	Status       string `json:"status"`
	DelayMinutes int    `json:"delay" validate:"min=0"`
	Speed        int    `json:"speed" validate:"min=0"`
	Location     string `json:"location"`
	Passengers   int    `json:"passengers" validate:"min=0"`
	NextStop     string `json:"nextStop"`
	ETA          string `json:"eta"`
	StatusColor  string `json:"statusColor" validate:"omitempty,oneof=success warning destructive"`
	Platform     *int   `json:"platform,omitempty" validate:"omitempty,min=1,max=16"`
}

// TrainSet wraps a complete replacement set so uniqueness of ids can be validated.
type TrainSet struct {
	Trains []TrainRecord `json:"trains" validate:"required,min=1,unique=ID,dive"`
}

// Clone returns a copy that shares no pointers with r.
func (r TrainRecord) Clone() TrainRecord {
	if r.Platform != nil {
		p := *r.Platform
		r.Platform = &p
	}
	return r
}

// Endpoints splits the route into its first and last station.
func (r TrainRecord) Endpoints() (origin, destination string) {
	stations := SplitRoute(r.Route)
	if len(stations) == 0 {
		return "", ""
	}
	return stations[0], stations[len(stations)-1]
}

// SplitRoute returns the trimmed, non-empty stations of a route string.
func SplitRoute(route string) []string {
	parts := strings.Split(route, strings.TrimSpace(RouteSeparator))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinRoute builds a route string from stations.
func JoinRoute(stations []string) string {
	return strings.Join(stations, RouteSeparator)
}

// CloneTrains deep-copies a slice of records.
func CloneTrains(in []TrainRecord) []TrainRecord {
	out := make([]TrainRecord, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
