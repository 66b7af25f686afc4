package analysis

import "math"

// Severity classifies how far a metric deviates from good posture.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeveritySignificant
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeveritySignificant:
		return "significant"
	default:
		return "none"
	}
}

// threshold holds the warning/significant cutoffs for one metric. Signed
// metrics (angles symmetric around vertical) compare on magnitude; the ratio
// metrics only trigger in the positive direction.
type threshold struct {
	warning     float64
	significant float64
	magnitude   bool
}

var thresholds = map[string]threshold{
	MetricShoulderAngle: {warning: 5.0, significant: 10.0, magnitude: true},
	MetricTorsoAngle:    {warning: 15.0, significant: 20.0, magnitude: true},
	MetricSpineOffset:   {warning: 0.15, significant: 0.20},
	MetricHeadForward:   {warning: 0.1, significant: 0.15},
}

// classify maps a metric value to a severity. Both the scorer and the
// assessor consume this so the cutoffs cannot drift apart; what each does
// with a severity (penalty points vs. phrasing) stays independent.
func classify(name string, value float64) Severity {
	t, ok := thresholds[name]
	if !ok {
		return SeverityNone
	}
	v := value
	if t.magnitude {
		v = math.Abs(value)
	}
	switch {
	case v > t.significant:
		return SeveritySignificant
	case v > t.warning:
		return SeverityWarning
	default:
		return SeverityNone
	}
}
