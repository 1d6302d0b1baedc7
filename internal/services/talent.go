package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"ats-screener/internal/models"
)

// TalentIndexService keeps one embedding per screened resume so recruiters
// can search previously screened candidates by semantic similarity.
type TalentIndexService interface {
	InitCollection() error
	IndexResume(ctx context.Context, screeningID uuid.UUID, filename string, atsScore int, verdict string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.CandidateMatch, error)
}

type talentIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewTalentIndexService(urlStr, apiKey, collectionName string, vectorSize uint64) (TalentIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &talentIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
	}, nil
}

// InitCollection implements TalentIndexService.
func (t *talentIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := t.client.CollectionExists(ctx, t.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = t.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: t.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     t.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", t.collectionName)
	return nil
}

// IndexResume implements TalentIndexService. Re-screening the same
// screening ID overwrites its point.
func (t *talentIndexService) IndexResume(ctx context.Context, screeningID uuid.UUID, filename string, atsScore int, verdict string, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("empty embedding")
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(screeningID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"screening_id": screeningID.String(),
			"filename":     filename,
			"ats_score":    int64(atsScore),
			"fit_verdict":  verdict,
		}),
	}

	_, err := t.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: t.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements TalentIndexService.
func (t *talentIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.CandidateMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	searchResult, err := t.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: t.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]models.CandidateMatch, 0, len(searchResult))
	for _, point := range searchResult {
		payload := point.Payload

		match := models.CandidateMatch{
			Similarity: point.Score,
		}
		if v, ok := payload["screening_id"]; ok {
			match.ScreeningID = v.GetStringValue()
		}
		if v, ok := payload["filename"]; ok {
			match.Filename = v.GetStringValue()
		}
		if v, ok := payload["ats_score"]; ok {
			match.ATSScore = int(v.GetIntegerValue())
		}
		if v, ok := payload["fit_verdict"]; ok {
			match.FitVerdict = v.GetStringValue()
		}

		matches = append(matches, match)
	}

	return matches, nil
}
