package llm

// SplitResult is the splitter's reply shape
type SplitResult struct {
	Questions []string `json:"questions"`
}

// FormatResult is the formatter's reply shape. IsComplete is false when the
// question text appears cut off mid-sentence or mid-option; such questions
// are not solved until resubmitted.
type FormatResult struct {
	FormattedText string `json:"formatted_text"`
	IsComplete    bool   `json:"is_complete"`
}

// SolveResult is the solver's reply shape: a short final answer plus a
// step-by-step explanation.
type SolveResult struct {
	Answer   string `json:"answer"`
	Analysis string `json:"analysis"`
}
