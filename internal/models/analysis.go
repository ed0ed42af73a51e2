package models

// Category groups the issues the model found in one area of the property.
type Category struct {
	Name            string   `json:"name"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Analysis is the shape requested from the model. The server never enforces it: the
// response body is whatever JSON the model produced.
type Analysis struct {
	Summary         string     `json:"summary"`
	Categories      []Category `json:"categories"`
	PriorityRepairs []string   `json:"priority_repairs"`
}

// FallbackAnalysis wraps raw model output that was not valid JSON.
func FallbackAnalysis(raw string) map[string]any {
	return map[string]any{"summary": raw}
}
