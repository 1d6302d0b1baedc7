package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"unicode"
)

const (
	// Character budget for extractive fallback summaries.
	defaultSummaryMaxChars = 600

	fallbackFeedback = "Fallback mode: generated without a narrative model. " +
		"Score is based on semantic similarity and skill overlap."
)

// NarrativeInput carries everything the generator needs: the two texts and
// the signals already computed by the deterministic pipeline.
type NarrativeInput struct {
	JobText       string
	ResumeText    string
	Similarity    float64
	Matched       []string
	Missing       []string
	JobSkillCount int
}

// Narrative is the assembled outcome of the generation chain. Score and
// verdict are final, with business rules already applied.
type Narrative struct {
	JobSummary     string
	ResumeSummary  string
	Score          int
	Verdict        string
	Matched        []string
	Missing        []string
	Feedback       string
	RawModelOutput string
}

// TextGenerator is one strategy in the narrative chain. A returned error
// means unavailable; the chain moves on to the next strategy.
type TextGenerator interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

type NarrativeService interface {
	Generate(ctx context.Context, input NarrativeInput) *Narrative
}

type narrativeService struct {
	generators    []TextGenerator
	promptBuilder *PromptBuilder
	summaryBudget int
}

// NewNarrativeService builds the generation chain. Generators are tried in
// order; when none produces output the deterministic fallback applies, so
// Generate never fails.
func NewNarrativeService(generators []TextGenerator, summaryBudget int) NarrativeService {
	if summaryBudget <= 0 {
		summaryBudget = defaultSummaryMaxChars
	}
	return &narrativeService{
		generators:    generators,
		promptBuilder: NewPromptBuilder(),
		summaryBudget: summaryBudget,
	}
}

func (n *narrativeService) Generate(ctx context.Context, input NarrativeInput) *Narrative {
	prompt := n.promptBuilder.BuildScreeningPrompt(input.JobText, input.ResumeText)

	for _, generator := range n.generators {
		if !generator.Available() {
			continue
		}

		output, err := generator.Generate(ctx, prompt)
		if err != nil {
			log.Printf("⚠️  %s narrative model unavailable: %v", generator.Name(), err)
			continue
		}
		if strings.TrimSpace(output) == "" {
			log.Printf("⚠️  %s narrative model returned empty output", generator.Name())
			continue
		}

		return n.fromModelOutput(output, input)
	}

	return n.fallback(input)
}

// fallback produces the fully deterministic, model-free narrative.
func (n *narrativeService) fallback(input NarrativeInput) *Narrative {
	fraction := MatchFraction(len(input.Matched), input.JobSkillCount)
	score, verdict := NormalizeScore(input.Similarity, fraction)

	return &Narrative{
		JobSummary:     ExtractiveSummary(input.JobText, n.summaryBudget),
		ResumeSummary:  ExtractiveSummary(input.ResumeText, n.summaryBudget),
		Score:          score,
		Verdict:        verdict,
		Matched:        input.Matched,
		Missing:        input.Missing,
		Feedback:       fallbackFeedback,
		RawModelOutput: "",
	}
}

// fromModelOutput treats the model response as untrusted, partially
// structured input: parse optimistically, validate field by field, and
// backfill each missing or invalid field from the deterministic pipeline.
func (n *narrativeService) fromModelOutput(raw string, input NarrativeInput) *Narrative {
	parsed := parseModelOutput(raw)
	fraction := MatchFraction(len(input.Matched), input.JobSkillCount)

	score := BaseScore(input.Similarity)
	if modelScore, ok := intField(parsed, "ATS Score"); ok {
		score = ClampScore(modelScore)
	}
	score = ApplyBusinessRules(score, input.Similarity, fraction)

	verdict := stringField(parsed, "Fit Verdict")
	if verdict == "" {
		verdict = VerdictFor(score)
	}

	narrative := &Narrative{
		Score:          score,
		Verdict:        verdict,
		RawModelOutput: raw,
		Feedback:       raw,
	}

	if feedback := stringField(parsed, "Feedback"); feedback != "" {
		narrative.Feedback = feedback
	}

	narrative.JobSummary = stringField(parsed, "Job Summary")
	if narrative.JobSummary == "" {
		narrative.JobSummary = ExtractiveSummary(input.JobText, n.summaryBudget)
	}

	narrative.ResumeSummary = stringField(parsed, "Resume Summary")
	if narrative.ResumeSummary == "" {
		narrative.ResumeSummary = ExtractiveSummary(input.ResumeText, n.summaryBudget)
	}

	narrative.Matched = stringSliceField(parsed, "Matched Skills")
	narrative.Missing = stringSliceField(parsed, "Missing Skills")
	if len(narrative.Matched) == 0 && len(narrative.Missing) == 0 {
		narrative.Matched = input.Matched
		narrative.Missing = input.Missing
	}

	return narrative
}

// parseModelOutput locates the JSON object in a model response that may be
// wrapped in markdown fences or prose. Returns nil when no object parses.
func parseModelOutput(raw string) map[string]interface{} {
	text := strings.ReplaceAll(raw, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil
	}

	return parsed
}

func stringField(parsed map[string]interface{}, key string) string {
	if parsed == nil {
		return ""
	}
	if value, ok := parsed[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func intField(parsed map[string]interface{}, key string) (int, bool) {
	if parsed == nil {
		return 0, false
	}
	switch value := parsed[key].(type) {
	case float64:
		return int(value), true
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func stringSliceField(parsed map[string]interface{}, key string) []string {
	if parsed == nil {
		return nil
	}
	items, ok := parsed[key].([]interface{})
	if !ok {
		return nil
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				values = append(values, s)
			}
		}
	}
	return values
}

// ExtractiveSummary takes leading sentences of the text up to maxChars,
// preferring to end on a sentence boundary. A single sentence longer than
// the budget is hard-truncated.
func ExtractiveSummary(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = defaultSummaryMaxChars
	}

	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}

	var (
		parts []string
		total int
	)
	for _, sentence := range splitSentences(normalized) {
		length := len([]rune(sentence))
		if total+length > maxChars && len(parts) > 0 {
			break
		}
		parts = append(parts, sentence)
		total += length + 1
		if total >= maxChars {
			break
		}
	}

	summary := strings.Join(parts, " ")
	if runes := []rune(summary); len(runes) > maxChars {
		summary = string(runes[:maxChars])
	}
	return summary
}

// splitSentences cuts the text after terminal punctuation followed by a
// space. Input is expected to have collapsed whitespace.
func splitSentences(text string) []string {
	runes := []rune(text)

	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			sentences = append(sentences, string(runes[start:i+1]))
			start = i + 2
			i++
		}
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}

	return sentences
}
