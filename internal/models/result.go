package models

// ScreeningResult is the flat assessment record returned to consumers.
// Field names are a stable contract for any UI reading the API.
type ScreeningResult struct {
	ATSScore        int      `json:"ats_score"`
	FitVerdict      string   `json:"fit_verdict"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	JobSummary      string   `json:"job_summary"`
	ResumeSummary   string   `json:"resume_summary"`
	Feedback        string   `json:"feedback"`
	RawModelOutput  string   `json:"raw_model_output"`
	EmbeddingCosine float64  `json:"embedding_cosine"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type CreateJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type CreateScreeningRequest struct {
	JobID            string `json:"job_id,omitempty"`
	JobDescription   string `json:"job_description,omitempty"`
	ResumeDocumentID string `json:"resume_document_id"`
}

type CreateScreeningResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ScreeningStatusResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	Result       *ScreeningResult `json:"result,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
}

type CandidateSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type CandidateMatch struct {
	ScreeningID string  `json:"screening_id"`
	Filename    string  `json:"filename"`
	ATSScore    int     `json:"ats_score"`
	FitVerdict  string  `json:"fit_verdict"`
	Similarity  float32 `json:"similarity"`
}
