package entity

// AnalysisRequest is the body accepted by the sentiment endpoint
type AnalysisRequest struct {
	Text string `json:"text"`
}

// AnalysisResult is the top-ranked sentiment for one text.
// Label is kept as the model returned it; Score is within [0, 1].
type AnalysisResult struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewAnalysisResult creates a result, clamping score into [0, 1]
func NewAnalysisResult(label string, score float64) *AnalysisResult {
	switch {
	case score < 0:
		score = 0
	case score > 1:
		score = 1
	}
	return &AnalysisResult{Label: label, Score: score}
}
