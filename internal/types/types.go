package types

// AnalyzeRequest represents the request structure for the analyze_posture
// endpoint. Metric values are nullable; the client sends null for anything
// it could not measure this frame. Unknown metric keys are accepted and
// ignored by the engine.
type AnalyzeRequest struct {
	Metrics map[string]*float64 `json:"metrics"`
	Issues  []string            `json:"issues"`
}

// DeskSetupTips represents the desk_setup response body.
type DeskSetupTips struct {
	Tips []string `json:"tips"`
}
