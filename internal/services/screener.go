package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"ats-screener/internal/models"
)

type ScreenerService interface {
	// Screen runs the full pipeline for one resume/job pair. screeningID
	// may be uuid.Nil for synchronous one-shot requests; when set, the
	// resume embedding is indexed for similar-candidate search.
	Screen(ctx context.Context, screeningID uuid.UUID, jobDescription string, resume []byte, filename string) (*models.ScreeningResult, error)
}

type screenerService struct {
	extractor  TextExtractorService
	skills     SkillExtractorService
	similarity SimilarityService
	narrative  NarrativeService
	talent     TalentIndexService // optional, best-effort
}

func NewScreenerService(
	extractor TextExtractorService,
	skills SkillExtractorService,
	similarity SimilarityService,
	narrative NarrativeService,
	talent TalentIndexService,
) ScreenerService {
	return &screenerService{
		extractor:  extractor,
		skills:     skills,
		similarity: similarity,
		narrative:  narrative,
		talent:     talent,
	}
}

func (s *screenerService) Screen(ctx context.Context, screeningID uuid.UUID, jobDescription string, resume []byte, filename string) (*models.ScreeningResult, error) {
	jobText := strings.TrimSpace(jobDescription)
	if jobText == "" {
		return nil, fmt.Errorf("%w: job description must not be empty", ErrInvalidInput)
	}
	if len(resume) == 0 {
		return nil, fmt.Errorf("%w: resume file is empty", ErrInvalidInput)
	}

	resumeText, err := s.extractor.ExtractText(resume, filename)
	if err != nil {
		return nil, err
	}

	jobSkills := s.skills.ExtractSkills(jobText)
	resumeSkills := s.skills.ExtractSkills(resumeText)
	matched, missing := s.skills.MatchSkills(jobSkills, resumeSkills)

	comparison, err := s.similarity.Compare(ctx, jobText, resumeText)
	if err != nil {
		return nil, err
	}

	narrative := s.narrative.Generate(ctx, NarrativeInput{
		JobText:       jobText,
		ResumeText:    resumeText,
		Similarity:    comparison.Cosine,
		Matched:       matched,
		Missing:       missing,
		JobSkillCount: len(jobSkills),
	})

	result := &models.ScreeningResult{
		ATSScore:        narrative.Score,
		FitVerdict:      narrative.Verdict,
		MatchedSkills:   ensureSlice(narrative.Matched),
		MissingSkills:   ensureSlice(narrative.Missing),
		JobSummary:      narrative.JobSummary,
		ResumeSummary:   narrative.ResumeSummary,
		Feedback:        narrative.Feedback,
		RawModelOutput:  narrative.RawModelOutput,
		EmbeddingCosine: comparison.Cosine,
	}

	if s.talent != nil && screeningID != uuid.Nil {
		err := s.talent.IndexResume(ctx, screeningID, filename, result.ATSScore, result.FitVerdict, comparison.ResumeVector)
		if err != nil {
			// Indexing is best-effort and never fails a screening.
			log.Printf("⚠️  Failed to index resume for screening %s: %v", screeningID, err)
		}
	}

	return result, nil
}

// ensureSlice keeps skill lists serializing as [] instead of null.
func ensureSlice(skills []string) []string {
	if skills == nil {
		return []string{}
	}
	return skills
}
