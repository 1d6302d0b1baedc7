package services

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func newTestSkillService(t *testing.T) SkillExtractorService {
	t.Helper()
	svc, err := NewSkillExtractorService("")
	if err != nil {
		t.Fatalf("NewSkillExtractorService: %v", err)
	}
	return svc
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	svc := newTestSkillService(t)

	skills := svc.ExtractSkills("Senior JavaScript engineer with TypeScript experience")
	if contains(skills, "java") {
		t.Errorf("extracted %v: 'java' must not match inside 'javascript'", skills)
	}
	if !contains(skills, "javascript") {
		t.Errorf("extracted %v: expected 'javascript'", skills)
	}
	if !contains(skills, "typescript") {
		t.Errorf("extracted %v: expected 'typescript'", skills)
	}
}

func TestExtractSkillsPunctuatedEntries(t *testing.T) {
	svc := newTestSkillService(t)

	skills := svc.ExtractSkills("Built CI/CD pipelines in C++ and Node.js services")
	for _, want := range []string{"ci/cd", "c++", "node.js"} {
		if !contains(skills, want) {
			t.Errorf("extracted %v: expected %q", skills, want)
		}
	}
}

func TestExtractSkillsCaseInsensitiveAndSorted(t *testing.T) {
	svc := newTestSkillService(t)

	skills := svc.ExtractSkills("PYTHON and Docker and python again, with Kubernetes")
	if !sort.StringsAreSorted(skills) {
		t.Errorf("extracted skills not sorted: %v", skills)
	}

	count := 0
	for _, s := range skills {
		if s == "python" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("'python' appears %d times, want 1: %v", count, skills)
	}
}

func TestExtractSkillsEmptyText(t *testing.T) {
	svc := newTestSkillService(t)

	skills := svc.ExtractSkills("")
	if skills == nil {
		t.Fatal("ExtractSkills returned nil, want empty slice")
	}
	if len(skills) != 0 {
		t.Errorf("extracted %v from empty text", skills)
	}
}

func TestMatchSkills(t *testing.T) {
	svc := newTestSkillService(t)

	jobSkills := []string{"docker", "go", "postgresql", "python"}
	resumeSkills := []string{"go", "linux", "python"}

	matched, missing := svc.MatchSkills(jobSkills, resumeSkills)

	wantMatched := []string{"go", "python"}
	wantMissing := []string{"docker", "postgresql"}

	if !equalStrings(matched, wantMatched) {
		t.Errorf("matched = %v, want %v", matched, wantMatched)
	}
	if !equalStrings(missing, wantMissing) {
		t.Errorf("missing = %v, want %v", missing, wantMissing)
	}

	// Matched and missing partition the job skill set.
	if len(matched)+len(missing) != len(jobSkills) {
		t.Errorf("partition sizes %d+%d != %d", len(matched), len(missing), len(jobSkills))
	}
	for _, skill := range matched {
		if contains(missing, skill) {
			t.Errorf("%q appears in both matched and missing", skill)
		}
	}
}

func TestMatchSkillsEmptyJob(t *testing.T) {
	svc := newTestSkillService(t)

	matched, missing := svc.MatchSkills(nil, []string{"go", "python"})
	if len(matched) != 0 || len(missing) != 0 {
		t.Errorf("matched = %v, missing = %v, want both empty", matched, missing)
	}
}

func TestVocabularyFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.txt")
	content := "# comment line\nrust\nelixir\n\nrust\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write vocabulary file: %v", err)
	}

	svc, err := NewSkillExtractorService(path)
	if err != nil {
		t.Fatalf("NewSkillExtractorService: %v", err)
	}

	if got := svc.VocabularySize(); got != 2 {
		t.Errorf("VocabularySize() = %d, want 2 (deduplicated, no comments)", got)
	}

	skills := svc.ExtractSkills("Rust and Elixir developer, also knows Python")
	if !equalStrings(skills, []string{"elixir", "rust"}) {
		t.Errorf("extracted %v, want [elixir rust]", skills)
	}
}

func TestVocabularyFileMissing(t *testing.T) {
	if _, err := NewSkillExtractorService("/nonexistent/skills.txt"); err == nil {
		t.Fatal("expected error for missing vocabulary file")
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
