package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubGenerator struct {
	name      string
	available bool
	output    string
	err       error
	calls     int
}

func (s *stubGenerator) Name() string    { return s.name }
func (s *stubGenerator) Available() bool { return s.available }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.output, s.err
}

func testNarrativeInput() NarrativeInput {
	return NarrativeInput{
		JobText:       "We need a Python engineer. Docker experience required. Remote friendly.",
		ResumeText:    "Seasoned Python developer. Shipped containerized services with Docker.",
		Similarity:    0.62,
		Matched:       []string{"docker", "python"},
		Missing:       []string{"kubernetes"},
		JobSkillCount: 3,
	}
}

func TestGenerateFallbackWithoutGenerators(t *testing.T) {
	svc := NewNarrativeService(nil, 0)
	input := testNarrativeInput()

	narrative := svc.Generate(context.Background(), input)

	// fraction 2/3, similarity 0.62: the similarity floor applies.
	if narrative.Score != 80 {
		t.Errorf("Score = %d, want 80", narrative.Score)
	}
	if narrative.Verdict != VerdictStrongFit {
		t.Errorf("Verdict = %q, want %q", narrative.Verdict, VerdictStrongFit)
	}
	if narrative.Feedback != fallbackFeedback {
		t.Errorf("Feedback = %q, want fallback feedback", narrative.Feedback)
	}
	if narrative.RawModelOutput != "" {
		t.Errorf("RawModelOutput = %q, want empty", narrative.RawModelOutput)
	}
	if !strings.Contains(narrative.JobSummary, "Python engineer") {
		t.Errorf("JobSummary = %q, expected extractive content", narrative.JobSummary)
	}
	if !equalStrings(narrative.Matched, input.Matched) {
		t.Errorf("Matched = %v, want %v", narrative.Matched, input.Matched)
	}
}

func TestGenerateFallbackIsDeterministic(t *testing.T) {
	svc := NewNarrativeService(nil, 0)
	input := testNarrativeInput()

	first := svc.Generate(context.Background(), input)
	second := svc.Generate(context.Background(), input)

	if first.Score != second.Score || first.Verdict != second.Verdict ||
		first.JobSummary != second.JobSummary || first.ResumeSummary != second.ResumeSummary ||
		first.Feedback != second.Feedback {
		t.Errorf("fallback narrative not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGenerateChainFailover(t *testing.T) {
	skipped := &stubGenerator{name: "local", available: false, output: `{"ATS Score": 1}`}
	failing := &stubGenerator{name: "remote", available: true, err: errors.New("connection refused")}
	empty := &stubGenerator{name: "spare", available: true, output: "   "}

	svc := NewNarrativeService([]TextGenerator{skipped, failing, empty}, 0)
	narrative := svc.Generate(context.Background(), testNarrativeInput())

	if skipped.calls != 0 {
		t.Errorf("unavailable generator was called %d times", skipped.calls)
	}
	if failing.calls != 1 || empty.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", failing.calls, empty.calls)
	}
	// Every strategy failed: the deterministic fallback applies.
	if narrative.Feedback != fallbackFeedback {
		t.Errorf("Feedback = %q, want fallback feedback", narrative.Feedback)
	}
}

func TestGenerateParsesModelOutput(t *testing.T) {
	output := "```json\n" + `{
		"Job Summary": "Python role with containers.",
		"Resume Summary": "Python developer with Docker.",
		"ATS Score": 88,
		"Fit Verdict": "Strong Fit",
		"Matched Skills": ["python", "docker"],
		"Missing Skills": ["kubernetes"],
		"Feedback": "Solid overlap, missing orchestration experience."
	}` + "\n```"

	gen := &stubGenerator{name: "local", available: true, output: output}
	svc := NewNarrativeService([]TextGenerator{gen}, 0)

	narrative := svc.Generate(context.Background(), testNarrativeInput())

	// Model score 88, fraction 2/3 keeps the 80 floor below it.
	if narrative.Score != 88 {
		t.Errorf("Score = %d, want 88", narrative.Score)
	}
	if narrative.Verdict != "Strong Fit" {
		t.Errorf("Verdict = %q, want Strong Fit", narrative.Verdict)
	}
	if narrative.JobSummary != "Python role with containers." {
		t.Errorf("JobSummary = %q", narrative.JobSummary)
	}
	if narrative.Feedback != "Solid overlap, missing orchestration experience." {
		t.Errorf("Feedback = %q", narrative.Feedback)
	}
	if !equalStrings(narrative.Matched, []string{"python", "docker"}) {
		t.Errorf("Matched = %v", narrative.Matched)
	}
	if narrative.RawModelOutput != output {
		t.Errorf("RawModelOutput not preserved")
	}
}

func TestGenerateModelScoreStillSubjectToBusinessRules(t *testing.T) {
	// The model reports a high score but no skills matched: the cap wins.
	gen := &stubGenerator{name: "local", available: true, output: `{"ATS Score": 92}`}
	svc := NewNarrativeService([]TextGenerator{gen}, 0)

	input := testNarrativeInput()
	input.Matched = nil
	input.Missing = []string{"docker", "kubernetes", "python"}
	input.Similarity = 0.2

	narrative := svc.Generate(context.Background(), input)
	if narrative.Score > 10 {
		t.Errorf("Score = %d, want <= 10 with zero matched skills", narrative.Score)
	}
}

func TestGenerateBackfillsMissingFields(t *testing.T) {
	// Only a score comes back; everything else is backfilled.
	gen := &stubGenerator{name: "local", available: true, output: `{"ATS Score": "71"}`}
	svc := NewNarrativeService([]TextGenerator{gen}, 0)

	input := testNarrativeInput()
	narrative := svc.Generate(context.Background(), input)

	// fraction 2/3, similarity 0.62: floor lifts 71 to 80.
	if narrative.Score != 80 {
		t.Errorf("Score = %d, want 80", narrative.Score)
	}
	if narrative.Verdict != VerdictStrongFit {
		t.Errorf("Verdict = %q, want %q", narrative.Verdict, VerdictStrongFit)
	}
	if narrative.JobSummary == "" || narrative.ResumeSummary == "" {
		t.Error("summaries not backfilled")
	}
	if !equalStrings(narrative.Matched, input.Matched) || !equalStrings(narrative.Missing, input.Missing) {
		t.Errorf("skills not backfilled: %v / %v", narrative.Matched, narrative.Missing)
	}
	// Raw output stands in for missing feedback.
	if narrative.Feedback != gen.output {
		t.Errorf("Feedback = %q, want raw output", narrative.Feedback)
	}
}

func TestGenerateUnparseableOutputKeptAsFeedback(t *testing.T) {
	gen := &stubGenerator{name: "local", available: true, output: "The candidate looks great overall."}
	svc := NewNarrativeService([]TextGenerator{gen}, 0)

	input := testNarrativeInput()
	narrative := svc.Generate(context.Background(), input)

	// No parseable score: the embedding-derived score applies.
	// base = round(0.62 * 105) = 65, lifted to 80 by the similarity floor.
	if narrative.Score != 80 {
		t.Errorf("Score = %d, want 80", narrative.Score)
	}
	if narrative.Feedback != gen.output {
		t.Errorf("Feedback = %q, want raw output", narrative.Feedback)
	}
	if narrative.RawModelOutput != gen.output {
		t.Errorf("RawModelOutput = %q, want raw output", narrative.RawModelOutput)
	}
}

func TestGenerateInvalidScoreDiscarded(t *testing.T) {
	gen := &stubGenerator{name: "local", available: true, output: `{"ATS Score": "not a number"}`}
	svc := NewNarrativeService([]TextGenerator{gen}, 0)

	input := testNarrativeInput()
	narrative := svc.Generate(context.Background(), input)

	// Falls back to the embedding-derived score path.
	if narrative.Score != 80 {
		t.Errorf("Score = %d, want 80", narrative.Score)
	}
}

func TestExtractiveSummary(t *testing.T) {
	text := "First sentence here. Second sentence follows! Third one asks? Fourth is long."

	got := ExtractiveSummary(text, 45)
	want := "First sentence here. Second sentence follows!"
	if got != want {
		t.Errorf("ExtractiveSummary = %q, want %q", got, want)
	}
}

func TestExtractiveSummaryCollapsesWhitespace(t *testing.T) {
	got := ExtractiveSummary("  spaced\t\tout\n\ntext.  ", 100)
	if got != "spaced out text." {
		t.Errorf("ExtractiveSummary = %q", got)
	}
}

func TestExtractiveSummaryTruncatesLongSentence(t *testing.T) {
	long := strings.Repeat("word ", 50) + "end."
	got := ExtractiveSummary(long, 30)
	if len([]rune(got)) > 30 {
		t.Errorf("summary length %d exceeds budget 30", len([]rune(got)))
	}
	if got == "" {
		t.Error("summary empty, want truncated first sentence")
	}
}

func TestExtractiveSummaryEmpty(t *testing.T) {
	if got := ExtractiveSummary("   ", 100); got != "" {
		t.Errorf("ExtractiveSummary = %q, want empty", got)
	}
}
