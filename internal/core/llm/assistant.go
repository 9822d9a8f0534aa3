package llm

import (
	"context"
	"encoding/json"
	"log"
	"strings"
)

// Fallback policy for every external-call boundary in this package. Each
// operation degrades to a valid result instead of returning an error, so a
// flaky model call never aborts a paper-level batch.
//
//	splitter  call/parse failure → paragraph split → whole input as one question
//	formatter call/parse failure → original text, is_complete=true
//	solver    call failure       → answer "Error", analysis = error message
//	solver    parse failure      → answer "",      analysis = raw reply
//	solver    empty input        → answer "",      analysis = noQuestionText (no call made)
const noQuestionText = "No question text provided."

func formatterFallback(original string) FormatResult {
	return FormatResult{FormattedText: original, IsComplete: true}
}

func solverCallFallback(err error) SolveResult {
	return SolveResult{Answer: "Error", Analysis: "Error generating solution: " + err.Error()}
}

func solverParseFallback(raw string) SolveResult {
	return SolveResult{Answer: "", Analysis: raw}
}

// Assistant exposes the three exam-specific model operations on top of the
// generic LLM service.
type Assistant struct {
	svc *Service
}

// NewAssistant creates an assistant backed by the given LLM service
func NewAssistant(svc *Service) *Assistant {
	return &Assistant{svc: svc}
}

// SplitQuestions partitions full-page OCR text into individual question
// strings. Never returns an empty list for non-empty input.
func (a *Assistant) SplitQuestions(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	reply, err := a.svc.GenerateResponse(ctx, splitterSystemPrompt, splitterUserPrompt(text))
	if err == nil {
		var result SplitResult
		cleaned := stripCodeFence(reply)
		if jsonErr := json.Unmarshal([]byte(cleaned), &result); jsonErr == nil && len(result.Questions) > 0 {
			return result.Questions
		}
		log.Printf("⚠️ Splitter reply was not valid JSON, falling back to paragraph split")
	} else {
		log.Printf("⚠️ Splitter call failed: %v", err)
	}

	if paragraphs := splitParagraphs(text); len(paragraphs) > 0 {
		return paragraphs
	}
	return []string{text}
}

// FormatQuestion cleans up one question's OCR text and flags completeness.
// Any failure yields the original text marked complete, so the question
// still reaches the solver.
func (a *Assistant) FormatQuestion(ctx context.Context, text string) FormatResult {
	reply, err := a.svc.GenerateResponse(ctx, formatterSystemPrompt, formatterUserPrompt(text))
	if err != nil {
		log.Printf("⚠️ Formatter call failed: %v", err)
		return formatterFallback(text)
	}

	obj := extractJSONObject(stripCodeFence(reply))
	if obj == "" {
		return formatterFallback(text)
	}

	// is_complete defaults to true when the reply omits it, so a terse
	// model never quarantines a question by accident.
	var raw struct {
		FormattedText string `json:"formatted_text"`
		IsComplete    *bool  `json:"is_complete"`
	}
	if err := json.Unmarshal([]byte(obj), &raw); err != nil || raw.FormattedText == "" {
		return formatterFallback(text)
	}

	result := FormatResult{FormattedText: raw.FormattedText, IsComplete: true}
	if raw.IsComplete != nil {
		result.IsComplete = *raw.IsComplete
	}
	return result
}

// SolveQuestion produces a final answer and explanation for one question.
// Always returns a terminal value to persist; see the policy table above.
func (a *Assistant) SolveQuestion(ctx context.Context, text string) SolveResult {
	if strings.TrimSpace(text) == "" {
		return SolveResult{Answer: "", Analysis: noQuestionText}
	}

	reply, err := a.svc.GenerateResponse(ctx, solverSystemPrompt, solverUserPrompt(text))
	if err != nil {
		log.Printf("⚠️ Solver call failed: %v", err)
		return solverCallFallback(err)
	}

	obj := extractJSONObject(stripCodeFence(reply))
	if obj == "" {
		return solverParseFallback(strings.TrimSpace(reply))
	}

	var result SolveResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return solverParseFallback(strings.TrimSpace(reply))
	}
	return result
}
