package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeProvider returns a canned reply or error and counts calls
type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func newAssistant(p Provider) *Assistant {
	return NewAssistant(NewServiceWithProvider(p))
}

func TestSplitQuestionsParsesJSONReply(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: `{"questions": ["1. First?", "2. Second?"]}`})

	got := a.SplitQuestions(context.Background(), "1. First?\n2. Second?")

	assert.Equal(t, []string{"1. First?", "2. Second?"}, got)
}

func TestSplitQuestionsStripsCodeFence(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: "```json\n{\"questions\": [\"only one\"]}\n```"})

	got := a.SplitQuestions(context.Background(), "only one")

	assert.Equal(t, []string{"only one"}, got)
}

func TestSplitQuestionsFallsBackToParagraphs(t *testing.T) {
	a := newAssistant(&fakeProvider{err: errors.New("timeout")})

	got := a.SplitQuestions(context.Background(), "first question\n\nsecond question")

	assert.Equal(t, []string{"first question", "second question"}, got)
}

func TestSplitQuestionsNeverEmptyForNonEmptyInput(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: "not json at all"})

	got := a.SplitQuestions(context.Background(), "single blob with no blank lines")

	assert.Equal(t, []string{"single blob with no blank lines"}, got)
}

func TestSplitQuestionsEmptyInput(t *testing.T) {
	fake := &fakeProvider{reply: `{"questions": ["x"]}`}
	a := newAssistant(fake)

	got := a.SplitQuestions(context.Background(), "   ")

	assert.Empty(t, got)
	assert.Zero(t, fake.calls)
}

func TestFormatQuestionParsesFencedReply(t *testing.T) {
	fenced := "```json\n{\"formatted_text\": \"1. Q?\\nA. x\", \"is_complete\": false}\n```"
	plain := `{"formatted_text": "1. Q?\nA. x", "is_complete": false}`

	got := newAssistant(&fakeProvider{reply: fenced}).FormatQuestion(context.Background(), "raw")
	want := newAssistant(&fakeProvider{reply: plain}).FormatQuestion(context.Background(), "raw")

	assert.Equal(t, want, got)
	assert.Equal(t, "1. Q?\nA. x", got.FormattedText)
	assert.False(t, got.IsComplete)
}

func TestFormatQuestionFallbackIsIdempotent(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: "sorry, I can't do that"})

	first := a.FormatQuestion(context.Background(), "original text")
	second := a.FormatQuestion(context.Background(), "original text")

	assert.Equal(t, first, second)
	assert.Equal(t, FormatResult{FormattedText: "original text", IsComplete: true}, first)
}

func TestFormatQuestionCallFailure(t *testing.T) {
	a := newAssistant(&fakeProvider{err: errors.New("connection refused")})

	got := a.FormatQuestion(context.Background(), "keep me")

	assert.Equal(t, "keep me", got.FormattedText)
	assert.True(t, got.IsComplete)
}

func TestFormatQuestionMissingCompleteFlagDefaultsTrue(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: `{"formatted_text": "clean question"}`})

	got := a.FormatQuestion(context.Background(), "raw")

	assert.Equal(t, "clean question", got.FormattedText)
	assert.True(t, got.IsComplete)
}

func TestFormatQuestionExplicitFalseSurvives(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: `{"formatted_text": "cut off mid", "is_complete": false}`})

	got := a.FormatQuestion(context.Background(), "raw")

	assert.False(t, got.IsComplete)
}

func TestFormatQuestionExtractsObjectFromChatter(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: `Sure! Here is the result: {"formatted_text": "clean", "is_complete": true} Hope it helps.`})

	got := a.FormatQuestion(context.Background(), "raw")

	assert.Equal(t, "clean", got.FormattedText)
	assert.True(t, got.IsComplete)
}

func TestSolveQuestionSuccess(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: `{"answer": "C", "analysis": "step by step"}`})

	got := a.SolveQuestion(context.Background(), "1. Pick C")

	assert.Equal(t, SolveResult{Answer: "C", Analysis: "step by step"}, got)
}

func TestSolveQuestionEmptyInputSkipsModel(t *testing.T) {
	fake := &fakeProvider{reply: `{"answer": "C", "analysis": "x"}`}
	a := newAssistant(fake)

	got := a.SolveQuestion(context.Background(), "")

	assert.Equal(t, SolveResult{Answer: "", Analysis: "No question text provided."}, got)
	assert.Zero(t, fake.calls)
}

func TestSolveQuestionCallFailure(t *testing.T) {
	a := newAssistant(&fakeProvider{err: errors.New("boom")})

	got := a.SolveQuestion(context.Background(), "question")

	assert.Equal(t, "Error", got.Answer)
	assert.Contains(t, got.Analysis, "boom")
}

func TestSolveQuestionNonJSONReplyBecomesAnalysis(t *testing.T) {
	a := newAssistant(&fakeProvider{reply: "The answer is 42 because reasons."})

	first := a.SolveQuestion(context.Background(), "question")
	second := a.SolveQuestion(context.Background(), "question")

	assert.Equal(t, first, second)
	assert.Equal(t, "", first.Answer)
	assert.Equal(t, "The answer is 42 because reasons.", first.Analysis)
}
