package analysis

import (
	"fmt"
	"log/slog"
)

// errorPhrase is appended when a single metric's evaluation fails; the rest
// of the assessment still runs.
const errorPhrase = "Error during metric analysis."

// finding pairs the human-readable phrase for a detected problem with the
// recommendations that address it.
type finding struct {
	phrase          string
	recommendations []string
}

// assessedMetrics fixes the order findings appear in: shoulders, sideways
// lean, slouch, forward head.
var assessedMetrics = []string{
	MetricShoulderAngle,
	MetricSpineOffset,
	MetricTorsoAngle,
	MetricHeadForward,
}

var findings = map[string]map[Severity]finding{
	MetricShoulderAngle: {
		SeveritySignificant: {
			phrase:          "Shoulders significantly uneven.",
			recommendations: []string{"Sit evenly, relax shoulders.", "Check armrest height/usage."},
		},
		SeverityWarning: {
			phrase:          "Shoulders slightly uneven.",
			recommendations: []string{"Be mindful of keeping shoulders level."},
		},
	},
	MetricSpineOffset: {
		SeveritySignificant: {
			phrase:          "Significant sideways lean.",
			recommendations: []string{"Engage core, sit centered.", "Avoid leaning heavily on one armrest."},
		},
		SeverityWarning: {
			phrase:          "Slight sideways lean.",
			recommendations: []string{"Check if leaning towards monitor or on armrest."},
		},
	},
	MetricTorsoAngle: {
		SeveritySignificant: {
			phrase:          "Significant slouch or backward lean.",
			recommendations: []string{"Sit tall, chest up.", "Use lumbar support actively.", "Stretch chest/back during breaks."},
		},
		SeverityWarning: {
			phrase:          "Slight slouch or backward lean.",
			recommendations: []string{"Gently pull shoulder blades back/down. Imagine head pulled up."},
		},
	},
	MetricHeadForward: {
		SeveritySignificant: {
			phrase:          "Significant forward head posture.",
			recommendations: []string{"Gently tuck chin (ears over shoulders).", "Ensure monitor at eye level & arm's length."},
		},
		SeverityWarning: {
			phrase:          "Slight forward head posture.",
			recommendations: []string{"Perform chin tucks periodically. Check monitor distance."},
		},
	},
}

// Assess evaluates each metric against the shared severity classification and
// returns the matching phrases and recommendations. Absent metrics are
// skipped silently; missing data is a scoring concern, not a phrasing one.
// A failure while evaluating one metric is contained to that metric.
func Assess(metrics MetricSet, issues []string) (phrases, recommendations []string) {
	_ = issues // issue strings never produce phrases; the composer handles them

	for _, name := range assessedMetrics {
		phrase, recs, err := assessMetric(name, metrics.Get(name))
		if err != nil {
			slog.Error("Metric assessment failed", "metric", name, "error", err)
			phrases = append(phrases, errorPhrase)
			continue
		}
		if phrase != "" {
			phrases = append(phrases, phrase)
			recommendations = append(recommendations, recs...)
		}
	}
	return phrases, recommendations
}

// assessMetric classifies one metric and looks up its finding. A panic here
// must not abort assessment of the remaining metrics.
func assessMetric(name string, value *float64) (phrase string, recs []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("assess %s: %v", name, r)
		}
	}()

	if value == nil {
		return "", nil, nil
	}
	severity := classify(name, *value)
	if severity == SeverityNone {
		return "", nil, nil
	}
	f := findings[name][severity]
	return f.phrase, f.recommendations, nil
}
