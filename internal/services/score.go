package services

import "math"

const (
	VerdictStrongFit  = "Strong Fit"
	VerdictPartialFit = "Partial Fit"
	VerdictNotFit     = "Not a Good Fit"
)

// calibrationBoost compensates for embedding models underestimating the
// overlap between informal resume language and job-description phrasing.
const calibrationBoost = 1.05

// BaseScore converts a raw cosine similarity into the 0-100 starting score.
func BaseScore(similarity float64) int {
	return ClampScore(int(math.Round(similarity * 100 * calibrationBoost)))
}

func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// MatchFraction is the proportion of the job's required skills found in the
// resume. The denominator is floored at 1 so an empty job skill set yields
// a well-defined 0 instead of a division by zero.
func MatchFraction(matchedCount, jobSkillCount int) float64 {
	denom := jobSkillCount
	if denom < 1 {
		denom = 1
	}
	return float64(matchedCount) / float64(denom)
}

// ApplyBusinessRules turns a starting score into the user-visible one:
//   - match fraction >= 90% floors the score at 95,
//   - match fraction >= 75% floors it at 90,
//   - match fraction >= 50% or similarity >= 0.50 floors it at 80,
//   - zero matched skills cap the score at 10, overriding any floor.
//
// The rules apply identically whether the starting score came from the
// embedding or from a narrative model.
func ApplyBusinessRules(score int, similarity, matchFraction float64) int {
	switch {
	case matchFraction >= 0.90:
		score = max(score, 95)
	case matchFraction >= 0.75:
		score = max(score, 90)
	case matchFraction >= 0.50 || similarity >= 0.50:
		score = max(score, 80)
	}

	if matchFraction == 0.0 {
		score = min(score, 10)
	}

	return score
}

// VerdictFor derives the categorical verdict from a final score.
func VerdictFor(score int) string {
	switch {
	case score >= 80:
		return VerdictStrongFit
	case score >= 60:
		return VerdictPartialFit
	default:
		return VerdictNotFit
	}
}

// NormalizeScore runs the full embedding-derived path: base score,
// business rules, verdict.
func NormalizeScore(similarity, matchFraction float64) (int, string) {
	score := ApplyBusinessRules(BaseScore(similarity), similarity, matchFraction)
	return score, VerdictFor(score)
}
