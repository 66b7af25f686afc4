package analysis

// Point deductions per outcome kind.
var penalties = struct {
	significant int
	warning     int
	missingData int
	visibility  int
}{
	significant: 22,
	warning:     14,
	missingData: 5,
	visibility:  6,
}

// scoredMetrics lists the metrics the scorer evaluates.
var scoredMetrics = []string{
	MetricShoulderAngle,
	MetricTorsoAngle,
	MetricSpineOffset,
	MetricHeadForward,
}

// Score computes the 0-100 posture score, or nil when there is no numeric
// signal and every reported issue explains why (insufficient data).
//
// Each metric contributes at most one penalty: the highest severity it
// reaches, or the missing-data penalty when it is absent without a visibility
// issue to account for it. A visibility issue costs a single flat penalty no
// matter how many issue strings mention it.
func Score(metrics MetricSet, issues []string) *int {
	if len(metrics) == 0 && allExplainMissingData(issues) {
		return nil
	}

	score := 100
	hasVisibility := classifyIssues(issues).visibility

	for _, name := range scoredMetrics {
		value := metrics.Get(name)
		if value == nil {
			// Absence is already covered by the flat visibility penalty
			// when the client flagged a visibility issue.
			if !hasVisibility {
				score -= penalties.missingData
			}
			continue
		}
		switch classify(name, *value) {
		case SeveritySignificant:
			score -= penalties.significant
		case SeverityWarning:
			score -= penalties.warning
		}
	}

	if hasVisibility {
		score -= penalties.visibility
	}

	score = clampScore(score)
	return &score
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
