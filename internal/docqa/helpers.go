package docqa

import (
	"context"
	"net/http"
	"time"

	"github.com/nvasani/findocqa/internal/docqa/finance"
	"github.com/nvasani/findocqa/internal/docqa/rules"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/nvasani/findocqa/internal/metrics"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

func returnAnswer(job jobModel.Job, answer rules.Answer, source string) jobModel.Job {
	job.JobPayload.Answer = answer.Text
	job.JobPayload.Confidence = answer.Confidence
	job.JobPayload.Source = source
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessQuestion", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeSessionLookupStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) (map[string]docModel.DocumentRecord, error) {
	*job = logOutput(*job, jobModel.SessionCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("session_lookup", time.Since(start)) }()

	return s.sessions.GetDocuments(ctx, job.SessionId)
}

func (s *service) executeRulesStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, scoped map[string]docModel.DocumentRecord) rules.Answer {
	*job = logOutput(*job, jobModel.RulesCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("rule_matching", time.Since(start)) }()

	return rules.Evaluate(job.JobPayload.Question, scoped)
}

func (s *service) executeModelStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, scoped map[string]docModel.DocumentRecord, history []string) (string, error) {
	*job = logOutput(*job, jobModel.ModelCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("model_generation", time.Since(start)) }()

	return s.provider.Generate(ctx, job.JobPayload.Question, finance.BuildSummary(scoped), history)
}

func (s *service) executeNormalizeStep(log *logger_i.Logger, job *jobModel.Job, doc docModel.Document) docModel.FinancialData {
	*job = logOutput(*job, jobModel.NormalizeCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("normalization", time.Since(start)) }()

	return finance.Normalize(doc.Text, doc.Tables)
}
