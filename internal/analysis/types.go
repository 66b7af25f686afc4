package analysis

// Metric names recognized by the engine. Anything else in a MetricSet is
// ignored; the pose-estimation client is free to send extra keys.
const (
	MetricShoulderAngle = "shoulderAngle"
	MetricTorsoAngle    = "torsoAngleFromVertical"
	MetricSpineOffset   = "spineHorizontalOffsetRatio"
	MetricHeadForward   = "headForwardRatio"
)

// MetricSet maps metric names to nullable values. A nil value means the
// client could not measure that metric this frame.
type MetricSet map[string]*float64

// Get returns the named metric, or nil when the key is absent or null.
func (m MetricSet) Get(name string) *float64 {
	if m == nil {
		return nil
	}
	return m[name]
}

// Feedback is the engine's per-request output.
type Feedback struct {
	Score           *int     `json:"score"`
	Assessment      string   `json:"assessment"`
	Recommendations []string `json:"recommendations"`
	MaintenanceTips []string `json:"maintenance_tips"`
	Benefits        *string  `json:"benefits"`
}
