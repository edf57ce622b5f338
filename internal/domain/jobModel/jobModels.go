package jobModel

import (
	"context"
	"time"

	"github.com/nvasani/findocqa/internal/domain/docModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	QuestionInit InternalStatus = "Init"
	SessionCall  InternalStatus = "Session"
	RulesCall    InternalStatus = "Rules"
	ModelCall    InternalStatus = "Model"

	ExtractInit       InternalStatus = "ExtractInit"
	ExtractProcessing InternalStatus = "ExtractProcessing"
	NormalizeCall     InternalStatus = "Normalize"
	Error             InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeQuestion JobType = "Question"
	JobTypeExtract  JobType = "Extract"
)

type Job struct {
	Id          string         `json:"id"`
	SessionId   string         `json:"session_id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Question   string  `json:"question,omitempty"`
	Document   string  `json:"document,omitempty"` //question scope: a doc name or "all"
	Answer     string  `json:"answer,omitempty"`
	Source     string  `json:"source,omitempty"` //"rules" or the model provider name
	Confidence float64 `json:"confidence,omitempty"`

	ExtractFileName string `json:"extract_file_name,omitempty"`
	ExtractPath     string `json:"extract_path,omitempty"`
	SectionCount    int    `json:"section_count,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// SessionStore holds everything a session owns: extracted document records and
// the running question/answer history. Records are replaced when the same
// document name is uploaded again.
type SessionStore interface {
	ValidateSession(ctx context.Context, id string) bool
	InitSession(ctx context.Context, id string) error
	SaveDocument(ctx context.Context, sessionId string, record docModel.DocumentRecord) error
	GetDocuments(ctx context.Context, sessionId string) (map[string]docModel.DocumentRecord, error)
	AppendConversation(ctx context.Context, sessionId string, payload JobPayload) error
	GetHistory(ctx context.Context, sessionId string) ([]string, error)
}
