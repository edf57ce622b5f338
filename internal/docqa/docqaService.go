package docqa

import (
	"context"
	"os"
	"time"

	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/docqa/extract"
	"github.com/nvasani/findocqa/internal/docqa/finance"
	"github.com/nvasani/findocqa/internal/docqa/llm"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/nvasani/findocqa/internal/metrics"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

// Service is all the worker sees - it doesn't need to know about extraction
// libraries, the rule table or the model provider behind it.
type Service interface {
	ProcessQuestion(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	ExtractDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	sessions jobModel.SessionStore
	provider llm.Provider //nil means rule answers only
	logger   *logger_i.Logger
}

// NewService constructor. The provider may be nil when no local model is
// configured; answers then come from the rule table alone.
func NewService(sessions jobModel.SessionStore, provider llm.Provider) Service {
	return &service{
		sessions: sessions,
		provider: provider,
		logger:   logger_i.NewLogger("DocQA Service"),
	}
}

func (s *service) ProcessQuestion(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, config.QuestionTimeout)
	defer cancel()

	// Session lookup
	records, err := s.executeSessionLookupStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "SESSION_LOOKUP_FAILURE", true)
	}
	scoped := finance.ScopeRecords(records, jobt.JobPayload.Document)

	// Rule table
	answer := s.executeRulesStep(processContext, inMethodLogger, &jobt, scoped)
	source := "rules"

	// Model enrichment - only when the rules weren't confident
	if answer.Confidence < config.ModelConfidenceThreshold && s.provider != nil {
		modelAnswer, err := s.executeModelStep(processContext, inMethodLogger, &jobt, scoped, messageHistory)
		if err != nil {
			// the rule answer still stands, the model was only enrichment
			inMethodLogger.Warn("Model call failed, keeping rule answer", "err", err)
		} else {
			answer.Text = modelAnswer
			source = s.provider.Name()
		}
	}

	metrics.CountAnswerSource(source)
	return returnAnswer(jobt, answer, source)
}

func (s *service) ExtractDocument(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_extraction", time.Since(start)) }()

	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	// the upload is removed whether or not the job succeeds
	defer func() {
		if err := os.Remove(jobt.JobPayload.ExtractPath); err != nil && !os.IsNotExist(err) {
			inMethodLogger.Error("Error removing temp file", "error", err)
		}
	}()

	jobt.CurrentStep = jobModel.ExtractProcessing
	doc, err := extract.Run(jobt.JobPayload.ExtractPath, jobt.JobPayload.ExtractFileName)
	if err != nil {
		jobt.Error.Message = "Error extracting document content"
		return s.jobError(jobt, err, "EXTRACTION_FAILURE", false)
	}

	financial := s.executeNormalizeStep(inMethodLogger, &jobt, doc)

	record := docModel.DocumentRecord{
		Name:        doc.Name,
		ContentType: doc.ContentType,
		ExtractedAt: doc.ExtractedAt,
		Financial:   financial,
	}

	jobt.CurrentStep = jobModel.SessionCall
	if err := s.sessions.SaveDocument(ctx, jobt.SessionId, record); err != nil {
		return s.jobError(jobt, err, "SESSION_SAVE_FAILURE", true)
	}

	jobt.JobPayload.SectionCount = len(financial)
	jobt.CurrentStep = jobModel.Complete
	jobt.Status = jobModel.JobStatusComplete
	return jobt
}
