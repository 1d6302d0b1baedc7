package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt creates the ATS screening prompt. The JSON keys in
// the instructions are a contract with parseModelOutput and must not be
// renamed independently.
func (pb *PromptBuilder) BuildScreeningPrompt(jobText, resumeText string) string {
	return fmt.Sprintf(`You are an ATS expert and hiring advisor.

1) Briefly summarize the JOB DESCRIPTION (3-6 bullet points): required skills, responsibilities, experience level.
2) Briefly summarize the RESUME (3-6 bullet points): top skills, years of experience, notable projects.
3) Compare the two and output:
   - ATS Score (0-100): compute a numeric match based on required skills present, experience, and role fit.
   - Fit Verdict: one of "Strong Fit", "Partial Fit", "Not a Good Fit". Use thresholds: >=80 Strong; 60-79 Partial; <60 Not a Good Fit.
   - Matched Skills: list of skills that appear in both (normalize names).
   - Missing Skills: required skills from JD that are not present in resume.
   - Feedback: concise, actionable (2-4 sentences).

JOB DESCRIPTION:
%s

RESUME:
%s

Output strictly as JSON with keys:
{"Job Summary": "...", "Resume Summary": "...", "ATS Score": number, "Fit Verdict": "...",
 "Matched Skills": [...], "Missing Skills": [...], "Feedback": "..." }
`, jobText, resumeText)
}
