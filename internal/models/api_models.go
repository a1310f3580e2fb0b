package models

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type AnalyzeResponse struct {
	InputText      string         `json:"input_text"`
	Emotion        EmotionLabel   `json:"emotion"`
	Confidence     int            `json:"confidence"`
	Message        string         `json:"message"`
	AnalysisMethod AnalysisMethod `json:"analysis_method"`
	RawAIScores    []LabelScore   `json:"raw_ai_scores"`
	AIError        string         `json:"ai_error,omitempty"`
}

func NewAnalyzeResponse(r AnalysisResult) AnalyzeResponse {
	scores := r.RawScores
	if scores == nil {
		scores = []LabelScore{}
	}
	return AnalyzeResponse{
		InputText:      r.InputText,
		Emotion:        r.Emotion,
		Confidence:     r.Confidence,
		Message:        r.Message(),
		AnalysisMethod: r.Method,
		RawAIScores:    scores,
		AIError:        r.AIError,
	}
}

type (
	SelfTestResponse struct {
		TestResults []SelfTestResult `json:"test_results"`
	}
	SelfTestResult struct {
		Text       string       `json:"text"`
		Emotion    EmotionLabel `json:"emotion"`
		Confidence int          `json:"confidence"`
	}
)

type ErrorResponse struct {
	Error string `json:"error"`
}
