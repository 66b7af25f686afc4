package analysis

import "fmt"

// Engine evaluates posture metrics and issue reports into feedback. It holds
// no state; a single Engine is safe for concurrent use and every call is a
// pure function of its inputs.
type Engine struct{}

// NewEngine creates the posture analysis engine.
func NewEngine() *Engine {
	return &Engine{}
}

// AnalyzePosture runs the scorer, assessor, and composer over one request's
// metrics and issues. Anything escaping the assessor's per-metric containment
// surfaces as a single error for the transport layer to report.
func (e *Engine) AnalyzePosture(metrics MetricSet, issues []string) (fb Feedback, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("posture analysis failed: %v", r)
		}
	}()

	phrases, recommendations := Assess(metrics, issues)
	score := Score(metrics, issues)
	return Compose(score, phrases, recommendations, issues), nil
}
