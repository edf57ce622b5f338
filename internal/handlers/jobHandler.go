package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nvasani/findocqa/internal/api"
	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/nvasani/findocqa/internal/job"
	"github.com/nvasani/findocqa/internal/metrics"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service *job.Service
}

func InitJobHandler(jobService *job.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	if newJob.isNewSession {
		logJH.Info("Create new session")
		handlerInstance.initNewSession(newJob.sessionId, newJob.traceId)
	}
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func GetSessionDocuments(ctx context.Context, sessionId string) (map[string]docModel.DocumentRecord, error) {
	return handlerInstance.service.SessionStore.GetDocuments(ctx, sessionId)
}

func ValidateAskRequest(askReq api.AskRequest) bool {
	if handlerInstance == nil {
		return false
	}
	logJH.Debug("Validating ask request", "sessionId :", askReq.SessionId)
	if askReq.Question == "" || askReq.SessionId == "" {
		return false
	}
	return handlerInstance.service.SessionStore.ValidateSession(context.Background(), askReq.SessionId)
}

func ValidateSession(sessionId string) bool {
	if handlerInstance == nil || sessionId == "" {
		return false
	}
	return handlerInstance.service.SessionStore.ValidateSession(context.Background(), sessionId)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.SessionId = newJob.sessionId
	_job.Status = jobModel.JobStatusQueued

	if newJob.isDocumentExtract {
		_job.CurrentStep = jobModel.ExtractInit
		_job.JobType = jobModel.JobTypeExtract
		_job.JobPayload.ExtractFileName = newJob.documentName
		_job.JobPayload.ExtractPath = newJob.documentSource

	} else {
		_job.JobType = jobModel.JobTypeQuestion
		_job.JobPayload.Question = newJob.question
		_job.JobPayload.Document = newJob.documentScope
		_job.CurrentStep = jobModel.QuestionInit
	}

	//metrics
	metrics.IncrementJobsInQueue()

	//saved before the send so a status poll right after the 202 finds the job
	if err := h.service.JobStore.SaveJob(context.Background(), _job); err != nil {
		logJH.Error("Failed to save queued job", "err", err)
	}

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker is signaled every N requests, and for every extraction job:
	//extraction parses whole filings which might take time, and an idle worker
	//retires on its own anyway
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeExtract {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}

func (h *JobHandler) initNewSession(sessionId string, traceId string) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	err := h.service.SessionStore.InitSession(ctxC, sessionId)
	if err != nil {
		logJH.Error("Error initiating new session", sessionId, err)
		return
	}
}
