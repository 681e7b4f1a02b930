package gateway

// Config holds generation settings per operation.
type Config struct {
	QuizMaxTokens       int
	QuizTemperature     float64
	AssignmentMaxTokens int
	ExplainMaxTokens    int
	ChatMaxTokens       int
	SummaryMaxTokens    int
}

// DefaultConfig returns the generation defaults. Only the quiz sets a
// temperature; free-text calls use the provider default.
func DefaultConfig() Config {
	return Config{
		QuizMaxTokens:       2048,
		QuizTemperature:     0.3,
		AssignmentMaxTokens: 4096,
		ExplainMaxTokens:    256,
		ChatMaxTokens:       1024,
		SummaryMaxTokens:    512,
	}
}
