package gateway

// Replacement content returned when generation fails or comes back empty.
const (
	AssignmentErrorText = "## Error \n\nUnable to generate assignment at this time. Please check your API key or internet connection."
	AssignmentEmptyText = "Could not generate assignment."

	ExplainErrorText = "This lesson is crucial for understanding modern AI architecture."
	ExplainEmptyText = "Learn the magic of neural networks."

	ChatErrorText = "I encountered an error connecting to the neural net."
	ChatEmptyText = "I'm pondering that..."

	SummaryErrorText = "Unable to summarize notes right now."
	SummaryEmptyText = "Nothing to summarize yet."
)

// FallbackQuiz returns the canned quiz shown when generation fails. Each
// call returns a fresh copy.
func FallbackQuiz() Quiz {
	return Quiz{Questions: []Question{
		{
			ID:                 1,
			Question:           "What is the primary goal of backpropagation?",
			Options:            []string{"To initialize weights", "To calculate gradients", "To normalize data", "To generate tokens"},
			CorrectOptionIndex: 1,
		},
		{
			ID:                 2,
			Question:           "Failed to load AI quiz. Please check your connection.",
			Options:            []string{"Retry", "Ignore", "Report", "Sleep"},
			CorrectOptionIndex: 0,
		},
	}}
}
