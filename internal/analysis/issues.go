package analysis

import "strings"

// The pose-estimation client reports data-quality problems as free text, so
// issue classification is case-insensitive substring matching on a few known
// tokens. All of that matching lives here.

// issueFlags summarizes one request's issue strings.
type issueFlags struct {
	visibility bool // any issue mentions "visibility"
	unclear    bool // any issue mentions "unclear"
	waiting    bool // any issue mentions "waiting"
}

func classifyIssues(issues []string) issueFlags {
	var f issueFlags
	for _, issue := range issues {
		lower := strings.ToLower(issue)
		if strings.Contains(lower, "visibility") {
			f.visibility = true
		}
		if strings.Contains(lower, "unclear") {
			f.unclear = true
		}
		if strings.Contains(lower, "waiting") {
			f.waiting = true
		}
	}
	return f
}

// allExplainMissingData reports whether every issue accounts for the lack of
// numeric signal. Vacuously true for an empty list: no metrics and no issues
// still means there is nothing to score.
func allExplainMissingData(issues []string) bool {
	for _, issue := range issues {
		lower := strings.ToLower(issue)
		if !strings.Contains(lower, "visibility") && !strings.Contains(lower, "waiting") {
			return false
		}
	}
	return true
}
