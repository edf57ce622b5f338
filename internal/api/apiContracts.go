package api

import (
	"time"

	"github.com/nvasani/findocqa/internal/domain/docModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	SessionId string            `json:"session_id" example:"sess_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type AnswerResponse struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Source     string  `json:"source" example:"rules"`
	Confidence float64 `json:"confidence" example:"0.9"`
}

type ExtractionResponse struct {
	Document     string `json:"document"`
	SectionCount int    `json:"sections_found"`
}

type Result struct {
	Status     string              `json:"status"`
	Answer     *AnswerResponse     `json:"answer,omitempty"`
	Extraction *ExtractionResponse `json:"extraction,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type UploadResponse struct {
	SessionId string            `json:"session_id"`
	Jobs      []InitJobResponse `json:"jobs"`
}

type DocumentListResponse struct {
	SessionId string            `json:"session_id"`
	Documents []DocumentSummary `json:"documents"`
}

type DocumentSummary struct {
	Name        string                 `json:"name"`
	ContentType string                 `json:"content_type"`
	ExtractedAt time.Time              `json:"extracted_at"`
	Financial   docModel.FinancialData `json:"financial"`
}

// requests---------------------

type AskRequest struct {
	Question  string `json:"question" validate:"required"`
	SessionId string `json:"session_id" validate:"required"`
	Document  string `json:"document,omitempty" example:"all"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
