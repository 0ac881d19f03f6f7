package provider

import (
	"fmt"
	"strings"
)

const trainShape = `[
  {
    "id": "train_number",
    "name": "train_name",
    "route": "start → destination",
    "status": "On Time|Delayed|Critical|Running|Stopped|Held at Station",
    "delay": number_of_minutes,
    "speed": current_speed,
    "location": "current_location",
    "passengers": number,
    "nextStop": "next_station",
    "eta": "time",
    "statusColor": "success|warning|destructive"
  }
]`

const jsonOnly = "Ensure valid JSON, no comments, no markdown."

// Prompts builds the text sent to the provider for each operation.
// Day is the simulated service day quoted in every prompt.
type Prompts struct {
	Day string
}

func (p Prompts) header(hub string) string {
	if hub == "" {
		hub = "New Delhi"
	}
	return fmt.Sprintf("Indian Railways, %s hub, on %s.", hub, p.Day)
}

func (p Prompts) InitialTrains(ids []string) string {
	return fmt.Sprintf(`Generate realistic real-time train data for %s
Provide data for %d trains in the following JSON format:
%s
Use train numbers: %s.
Include a mix of on-time, delayed, and critical trains.
%s`, p.header(""), len(ids), trainShape, quoteList(ids), jsonOnly)
}

func (p Prompts) Resync(now, snapshot string) string {
	return fmt.Sprintf(`Generate updated real-time train status for %s Current time: %s.
Update the status, locations, speeds, delays, and ETAs for these existing trains to simulate real-time movement:
%s
Provide updated data in the exact same JSON format:
%s
Keep the same train ids. Moving trains should advance locations. Keep passenger counts similar unless there is an incident.
%s`, p.header(""), now, snapshot, trainShape, jsonOnly)
}

func (p Prompts) Routes(trainID, trainName, route, hub string) string {
	return fmt.Sprintf(`Generate realistic route data for train %s (%s, %s) from %s
Return JSON: {"currentRoute": {"stations": [string], "distance": km, "estimatedTime": "Xh Ym"},
"alternateRoutes": [{"stations": [string], "distance": km, "estimatedTime": "Xh Ym"}]}
Provide 1-2 alternate routes. %s`, trainID, trainName, route, p.header(hub), jsonOnly)
}

func (p Prompts) Analytics(hub string) string {
	return fmt.Sprintf(`Generate simulated analytics data for trains departing from %s
Return JSON with:
{"performanceTrends": {"onTimePercentage": number, "averageDelay": number, "criticalIncidents": number, "averageSpeed": number, "passengerLoadFactor": number},
"scheduleAnalysis": [{"id": string, "name": string, "scheduledDeparture": "HH:MM", "actualDeparture": "HH:MM", "departureDeviation": minutes, "reliabilityScore": number}]}
%s`, p.header(hub), jsonOnly)
}

func (p Prompts) Alerts(hub string) string {
	return fmt.Sprintf(`Generate simulated real-time alert data for %s
Return JSON with:
{"alerts": [{"id": string, "title": string, "description": string, "severity": "critical|warning|info", "time": "HH:MM", "section": string}]}
Provide 10 alerts. %s`, p.header(hub), jsonOnly)
}

func (p Prompts) EmergencyStop(hub, snapshot string) string {
	return fmt.Sprintf(`Simulate an emergency stop for all trains in %s
Update these trains after emergency stop:
%s
For each train set speed to 0, status to "Emergency Stopped", statusColor to "destructive",
ETA to "Pending Emergency" and add a delay of 30 minutes or more.
Return the updated JSON array in the exact format. %s`, p.header(hub), snapshot, jsonOnly)
}

func (p Prompts) BackupRoutes(hub, snapshot string) string {
	return fmt.Sprintf(`Activate backup routes for all trains in %s
Update these trains:
%s
For each train change the route to pass through a backup station, set status to "On Backup Route",
statusColor to "warning" and add a delay of about 15 minutes.
Return the updated JSON array in the exact format. %s`, p.header(hub), snapshot, jsonOnly)
}

func (p Prompts) OptimizeRoutes(hub, snapshot string) string {
	return fmt.Sprintf(`Optimize routes for delayed trains in %s
Update these trains:
%s
Reduce the delay of delayed trains by about 20 percent, set status to "Optimized Route" and statusColor to "success".
Return the updated JSON array in the exact format. %s`, p.header(hub), snapshot, jsonOnly)
}

func (p Prompts) PlatformAllocation(hub, snapshot string) string {
	return fmt.Sprintf(`Allocate platforms (1-16) to these trains at %s
%s
Return one JSON object: {"trains": [train objects in the exact format with an added "platform" number], "allocation": {"train_id": platform}}
%s`, p.header(hub), snapshot, jsonOnly)
}

func (p Prompts) Maintenance(hub, maintenanceType string, trainIDs []string) string {
	return fmt.Sprintf(`Generate a %s maintenance schedule for %s
Trains: %s.
Return JSON: {"schedule": string, "resources": [string], "downtime": string, "protocols": string, "affectedTrains": [train ids]}
%s`, maintenanceType, p.header(hub), quoteList(trainIDs), jsonOnly)
}

func (p Prompts) Reroute(train string, stations []string) string {
	return fmt.Sprintf(`Reroute this train on %s
%s
New route stations: %s.
Return the single updated train as a JSON object in the same format with route "%s",
status "Rerouted", statusColor "warning" and a recalculated ETA. %s`, p.Day, train, quoteList(stations), strings.Join(stations, " → "), jsonOnly)
}

func (p Prompts) ToggleSpeed(train, action string) string {
	return fmt.Sprintf(`Apply the control action "%s" to this train on %s
%s
For hold: speed 0, status "Held at Station", statusColor "warning", ETA "On Hold".
For resume: a realistic running speed, status "Resumed Travel", statusColor "success" and a recalculated ETA.
Return the single updated train as a JSON object in the same format. %s`, action, p.Day, train, jsonOnly)
}

func (p Prompts) EmergencyContact(hub, message string) string {
	return fmt.Sprintf(`Generate an emergency services contact log for the Train Control Center of %s
Incident message: %q
Return JSON: {"log": string, "protocol": string, "eta": string}
%s`, p.header(hub), message, jsonOnly)
}

func (p Prompts) Recommendations(snapshot string) string {
	return fmt.Sprintf(`Based on the following train statuses, generate recommendations for railway traffic optimization.
Return a JSON array of 1-3 objects:
{"type": "routing|timing|platform", "title": string, "description": string, "confidence": number (0-100),
"estimatedImprovement": string, "trainAffected": string, "timeWindow": string}
Train statuses:
%s
%s`, snapshot, jsonOnly)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
