package analysis

import (
	"strings"

	"github.com/deskalign/posture-api/internal/content"
)

// Compose merges the scorer's score and the assessor's phrases and
// recommendations into a single Feedback.
//
// Assessment resolution, in priority order: good alignment when nothing was
// detected, then visibility-only, then waiting-only, then the joined phrase
// list (with a visibility caveat when both apply). The maintenance extras are
// decided after the assessment string: near-perfect clean results get the
// "looks great" override with extras, detected posture issues get extras, and
// visibility/waiting-only responses never carry recommendations or extras.
func Compose(score *int, phrases, recommendations, issues []string) Feedback {
	flags := classifyIssues(issues)
	hasVisibility := flags.visibility || flags.unclear
	isWaiting := flags.waiting
	hasPostureIssue := len(phrases) > 0

	var assessment string
	switch {
	case !hasPostureIssue && !hasVisibility && !isWaiting:
		assessment = "Posture analysis indicates good alignment."
	case !hasPostureIssue && hasVisibility:
		assessment = "Could not analyze clearly due to visibility. Adjust position/lighting."
	case !hasPostureIssue && isWaiting:
		assessment = "Waiting for clearer pose data."
	default:
		assessment = strings.Join(dedupe(phrases), ". ") + "."
		if hasVisibility {
			assessment += " Visibility may affect accuracy."
		}
	}
	// The phrase join can produce ".." when a phrase already ends in a period.
	assessment = strings.TrimSpace(strings.ReplaceAll(assessment, "..", "."))

	showExtras := false
	if score != nil && *score >= 85 && !hasPostureIssue && !hasVisibility {
		assessment = "Posture looks great! Keep it up."
		showExtras = true
	} else if hasPostureIssue {
		showExtras = true
	}

	recs := dedupe(recommendations)

	// Visibility/waiting-only responses carry no posture advice.
	if (hasVisibility || isWaiting) && !hasPostureIssue {
		recs = []string{}
		showExtras = false
	}

	fb := Feedback{
		Score:           score,
		Assessment:      assessment,
		Recommendations: recs,
		MaintenanceTips: []string{},
	}
	if showExtras {
		fb.MaintenanceTips = content.MaintenanceTips()
		b := content.Benefits()
		fb.Benefits = &b
	}
	return fb
}

// dedupe removes duplicate strings preserving first-occurrence order. Always
// returns a non-nil slice so the JSON encoding stays a list.
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
