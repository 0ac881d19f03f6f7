package model

import "time"

// TrainPagination describes one page of the trains listing.
type TrainPagination struct {
	TotalTrains int `json:"totalTrains"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// TrainPage is the response of the trains listing.
type TrainPage struct {
	Trains     []TrainRecord   `json:"trains"`
	Pagination TrainPagination `json:"pagination"`
}

// RouteInfo is one path a train can take.
type RouteInfo struct {
	Stations      []string `json:"stations" validate:"required,min=2,dive,required"`
	Distance      int      `json:"distance" validate:"min=0"`
	EstimatedTime string   `json:"estimatedTime"`
}

// RouteOptions is the current route of a train and its alternatives.
type RouteOptions struct {
	CurrentRoute    RouteInfo   `json:"currentRoute"`
	AlternateRoutes []RouteInfo `json:"alternateRoutes" validate:"dive"`
}

// PerformanceTrends aggregates hub performance.
type PerformanceTrends struct {
	OnTimePercentage    float64 `json:"onTimePercentage"`
	AverageDelay        float64 `json:"averageDelay"`
	CriticalIncidents   int     `json:"criticalIncidents"`
	AverageSpeed        float64 `json:"averageSpeed"`
	PassengerLoadFactor float64 `json:"passengerLoadFactor"`
}

// ScheduleEntry compares scheduled and actual departure of one train.
type ScheduleEntry struct {
	ID                 string  `json:"id" validate:"required"`
	Name               string  `json:"name"`
	ScheduledDeparture string  `json:"scheduledDeparture"`
	ActualDeparture    string  `json:"actualDeparture"`
	DepartureDeviation int     `json:"departureDeviation"`
	ReliabilityScore   float64 `json:"reliabilityScore"`
}

// Analytics is the response of the analytics endpoint.
type Analytics struct {
	PerformanceTrends PerformanceTrends `json:"performanceTrends"`
	ScheduleAnalysis  []ScheduleEntry   `json:"scheduleAnalysis" validate:"dive"`
}

// Alert severities.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Alert is a single operational alert.
type Alert struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity" validate:"oneof=critical warning info"`
	Time        string `json:"time"`
	Section     string `json:"section"`
}

// AlertFeed is the provider shape for alerts.
type AlertFeed struct {
	Alerts []Alert `json:"alerts" validate:"required,min=1,dive"`
}

// AlertPagination describes one page of the alerts listing.
type AlertPagination struct {
	TotalAlerts int `json:"totalAlerts"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// AlertPage is the response of the alerts listing.
type AlertPage struct {
	Alerts     []Alert         `json:"alerts"`
	Pagination AlertPagination `json:"pagination"`
}

// MaintenancePlan is what the provider returns for a maintenance request.
type MaintenancePlan struct {
	Schedule       string   `json:"schedule"`
	Resources      []string `json:"resources"`
	Downtime       string   `json:"downtime"`
	Protocols      string   `json:"protocols"`
	AffectedTrains []string `json:"affectedTrains"`
}

// PlatformPlan is the provider shape for platform allocation.
type PlatformPlan struct {
	Trains     []TrainPatch   `json:"trains"`
	Allocation map[string]any `json:"allocation"`
}

// EmergencyLog is the provider shape for an emergency services contact.
type EmergencyLog struct {
	Log      string `json:"log"`
	Protocol string `json:"protocol"`
	ETA      string `json:"eta"`
}

// Recommendation types.
const (
	RecommendationRouting  = "routing"
	RecommendationTiming   = "timing"
	RecommendationPlatform = "platform"
)

// Recommendation is a traffic optimization hint.
type Recommendation struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"type" validate:"oneof=routing timing platform"`
	Title                string  `json:"title" validate:"required"`
	Description          string  `json:"description"`
	Confidence           float64 `json:"confidence" validate:"min=0,max=100"`
	EstimatedImprovement string  `json:"estimatedImprovement"`
	TrainAffected        string  `json:"trainAffected"`
	TimeWindow           string  `json:"timeWindow"`
}

// ActionResult is the response of control actions.
type ActionResult struct {
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Allocation any    `json:"allocation,omitempty"`
}

// Health is the response of the health endpoint.
type Health struct {
	Status          string     `json:"status"`
	TrainsCount     int        `json:"trainsCount"`
	ProviderEnabled bool       `json:"providerEnabled"`
	LastSync        *time.Time `json:"lastSync"`
	CacheEntries    int        `json:"cacheEntries"`
}
