package services

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// defaultSkillVocabulary is the built-in reference list of technical terms
// the screener recognizes. It can be replaced wholesale with SKILLS_FILE,
// so matching logic never depends on specific entries.
var defaultSkillVocabulary = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "go", "ruby",
	"php", "swift", "kotlin", "sql",
	// Frameworks / libraries
	"django", "flask", "fastapi", "react", "angular", "vue", "nextjs",
	"node.js", "express", "spring", "dotnet",
	// Data / ML
	"pandas", "numpy", "scikit-learn", "pytorch", "tensorflow", "nlp",
	"machine learning", "deep learning", "data analysis", "data science",
	// Databases / caches
	"postgresql", "mysql", "mongodb", "redis",
	// Cloud / DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "ci/cd", "devops",
	// Other
	"rest api", "graphql", "microservices", "git", "linux", "agile", "scrum",
}

type SkillExtractorService interface {
	ExtractSkills(text string) []string
	MatchSkills(jobSkills, resumeSkills []string) (matched, missing []string)
	VocabularySize() int
}

type skillMatcher struct {
	skill   string
	pattern *regexp.Regexp // nil means literal substring match
}

type skillExtractorService struct {
	matchers []skillMatcher
}

var plainWordPattern = regexp.MustCompile(`^[a-z0-9 ]+$`)

// NewSkillExtractorService compiles the matching rules for the reference
// vocabulary. When vocabularyFile is non-empty it replaces the built-in
// list, one entry per line.
func NewSkillExtractorService(vocabularyFile string) (SkillExtractorService, error) {
	vocabulary := defaultSkillVocabulary
	if vocabularyFile != "" {
		loaded, err := loadVocabulary(vocabularyFile)
		if err != nil {
			return nil, err
		}
		vocabulary = loaded
	}

	seen := make(map[string]bool, len(vocabulary))
	matchers := make([]skillMatcher, 0, len(vocabulary))
	for _, entry := range vocabulary {
		skill := strings.ToLower(strings.TrimSpace(entry))
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true

		m := skillMatcher{skill: skill}
		// Entries with punctuation ("c++", "ci/cd", "node.js") match as
		// literal substrings; plain words and phrases are bounded so
		// "java" never matches inside "javascript".
		if plainWordPattern.MatchString(skill) {
			m.pattern = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
		}
		matchers = append(matchers, m)
	}

	return &skillExtractorService{matchers: matchers}, nil
}

func loadVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skill vocabulary file: %w", err)
	}
	defer f.Close()

	var vocabulary []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vocabulary = append(vocabulary, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skill vocabulary file: %w", err)
	}

	return vocabulary, nil
}

// ExtractSkills returns the sorted set of vocabulary entries present in the
// text. Matching is case-insensitive.
func (s *skillExtractorService) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make([]string, 0)
	for _, m := range s.matchers {
		if m.pattern != nil {
			if m.pattern.MatchString(lower) {
				found = append(found, m.skill)
			}
		} else if strings.Contains(lower, m.skill) {
			found = append(found, m.skill)
		}
	}

	sort.Strings(found)
	return found
}

// MatchSkills intersects and subtracts the two skill sets. The returned
// slices are sorted, disjoint, and together cover the job's skill set.
func (s *skillExtractorService) MatchSkills(jobSkills, resumeSkills []string) (matched, missing []string) {
	resumeSet := make(map[string]bool, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[skill] = true
	}

	matched = make([]string, 0, len(jobSkills))
	missing = make([]string, 0, len(jobSkills))
	for _, skill := range jobSkills {
		if resumeSet[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

func (s *skillExtractorService) VocabularySize() int {
	return len(s.matchers)
}
