package model

// TrainPatch is an untrusted, possibly partial train-shaped object.
// A nil field means the source did not provide it (JSON null counts as absent).
type TrainPatch struct {
	ID           *string `json:"id"`
	Name         *string `json:"name"`
	Route        *string `json:"route"`
	Status       *string `json:"status"`
	DelayMinutes *int    `json:"delay"`
	Speed        *int    `json:"speed"`
	Location     *string `json:"location"`
	Passengers   *int    `json:"passengers"`
	NextStop     *string `json:"nextStop"`
	ETA          *string `json:"eta"`
	StatusColor  *string `json:"statusColor"`
	Platform     *int    `json:"platform"`
}

// Apply overlays every field present in p onto rec. The id is never changed.
func (p TrainPatch) Apply(rec TrainRecord) TrainRecord {
	out := rec.Clone()
	setString(&out.Name, p.Name)
	setString(&out.Route, p.Route)
	setString(&out.Status, p.Status)
	setInt(&out.DelayMinutes, p.DelayMinutes)
	setInt(&out.Speed, p.Speed)
	setString(&out.Location, p.Location)
	setInt(&out.Passengers, p.Passengers)
	setString(&out.NextStop, p.NextStop)
	setString(&out.ETA, p.ETA)
	setString(&out.StatusColor, p.StatusColor)
	if p.Platform != nil {
		v := *p.Platform
		out.Platform = &v
	}
	return out
}

// TargetID returns the patch id, or "" when absent.
func (p TrainPatch) TargetID() string {
	if p.ID == nil {
		return ""
	}
	return *p.ID
}

// IsEmpty reports whether the patch carries no field besides the id.
func (p TrainPatch) IsEmpty() bool {
	return p.Name == nil && p.Route == nil && p.Status == nil && p.DelayMinutes == nil &&
		p.Speed == nil && p.Location == nil && p.Passengers == nil && p.NextStop == nil &&
		p.ETA == nil && p.StatusColor == nil && p.Platform == nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Str returns a pointer to s. Used to build patches in code.
func Str(s string) *string { return &s }

// Int returns a pointer to n. Used to build patches in code.
func Int(n int) *int { return &n }
