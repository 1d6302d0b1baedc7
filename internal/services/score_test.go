package services

import "testing"

func TestBaseScore(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		want       int
	}{
		{"zero similarity", 0.0, 0},
		{"mid similarity", 0.5, 53},
		{"rounds up", 0.42, 44},
		{"calibration clamps at 100", 0.99, 100},
		{"negative clamps at 0", -0.3, 0},
		{"perfect similarity", 1.0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseScore(tt.similarity); got != tt.want {
				t.Errorf("BaseScore(%v) = %d, want %d", tt.similarity, got, tt.want)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	if got := ClampScore(-5); got != 0 {
		t.Errorf("ClampScore(-5) = %d, want 0", got)
	}
	if got := ClampScore(150); got != 100 {
		t.Errorf("ClampScore(150) = %d, want 100", got)
	}
	if got := ClampScore(73); got != 73 {
		t.Errorf("ClampScore(73) = %d, want 73", got)
	}
}

func TestMatchFraction(t *testing.T) {
	if got := MatchFraction(3, 4); got != 0.75 {
		t.Errorf("MatchFraction(3, 4) = %v, want 0.75", got)
	}
	// Empty job skill set must not divide by zero.
	if got := MatchFraction(0, 0); got != 0.0 {
		t.Errorf("MatchFraction(0, 0) = %v, want 0", got)
	}
	if got := MatchFraction(2, 0); got != 2.0 {
		t.Errorf("MatchFraction(2, 0) = %v, want 2", got)
	}
}

func TestApplyBusinessRules(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		similarity    float64
		matchFraction float64
		want          int
	}{
		{"near-complete match floors at 95", 40, 0.3, 0.95, 95},
		{"strong match floors at 90", 40, 0.3, 0.80, 90},
		{"half match floors at 80", 40, 0.3, 0.50, 80},
		{"high similarity alone floors at 80", 40, 0.55, 0.10, 80},
		{"zero matches cap at 10", 85, 0.9, 0.0, 10},
		{"floor does not lower a higher score", 98, 0.3, 0.95, 98},
		{"no rule applies", 42, 0.3, 0.25, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyBusinessRules(tt.score, tt.similarity, tt.matchFraction)
			if got != tt.want {
				t.Errorf("ApplyBusinessRules(%d, %v, %v) = %d, want %d",
					tt.score, tt.similarity, tt.matchFraction, got, tt.want)
			}
		})
	}
}

func TestApplyBusinessRulesZeroMatchOverridesSimilarityFloor(t *testing.T) {
	// High cosine similarity but no overlapping skills: the cap wins.
	got := ApplyBusinessRules(BaseScore(0.85), 0.85, 0.0)
	if got > 10 {
		t.Errorf("score with zero matched skills = %d, want <= 10", got)
	}
}

func TestApplyBusinessRulesMonotonicInScore(t *testing.T) {
	for _, fraction := range []float64{0.0, 0.3, 0.5, 0.8, 1.0} {
		prev := -1
		for score := 0; score <= 100; score++ {
			got := ApplyBusinessRules(score, 0.4, fraction)
			if got < prev {
				t.Fatalf("fraction %v: score %d mapped to %d, below previous %d",
					fraction, score, got, prev)
			}
			prev = got
		}
	}
}

func TestVerdictFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, VerdictStrongFit},
		{80, VerdictStrongFit},
		{79, VerdictPartialFit},
		{60, VerdictPartialFit},
		{59, VerdictNotFit},
		{0, VerdictNotFit},
	}

	for _, tt := range tests {
		if got := VerdictFor(tt.score); got != tt.want {
			t.Errorf("VerdictFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestNormalizeScoreStrongCandidate(t *testing.T) {
	// High similarity and near-complete skill coverage.
	score, verdict := NormalizeScore(0.82, 0.92)
	if score < 95 {
		t.Errorf("score = %d, want >= 95", score)
	}
	if verdict != VerdictStrongFit {
		t.Errorf("verdict = %q, want %q", verdict, VerdictStrongFit)
	}
}

func TestNormalizeScoreUnrelatedCandidate(t *testing.T) {
	// Low similarity and no skill overlap.
	score, verdict := NormalizeScore(0.12, 0.0)
	if score > 10 {
		t.Errorf("score = %d, want <= 10", score)
	}
	if verdict != VerdictNotFit {
		t.Errorf("verdict = %q, want %q", verdict, VerdictNotFit)
	}
}

func TestNormalizeScorePartialCandidate(t *testing.T) {
	// Moderate similarity, a third of the required skills.
	score, verdict := NormalizeScore(0.60, 0.33)
	if score < 80 {
		t.Errorf("score = %d, want >= 80 from the similarity floor", score)
	}
	if verdict != VerdictStrongFit {
		t.Errorf("verdict = %q, want %q", verdict, VerdictStrongFit)
	}

	// Same skill coverage but similarity below the floor threshold.
	score, verdict = NormalizeScore(0.45, 0.33)
	if score != 47 {
		t.Errorf("score = %d, want 47", score)
	}
	if verdict != VerdictNotFit {
		t.Errorf("verdict = %q, want %q", verdict, VerdictNotFit)
	}
}
