package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nvasani/findocqa/internal/config"
	jobmodel "github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/nvasani/findocqa/internal/metrics"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	// the closure reads job.Status after the final state is set below
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.ExtractTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	if job.JobType == jobmodel.JobTypeExtract {
		job.CurrentStep = jobmodel.ExtractProcessing
		job = extractDocument(job, ctx, logger)

	} else {
		job.CurrentStep = jobmodel.SessionCall
		job = processQuestion(job, ctx, logger)
		if job.Status != jobmodel.JobStatusError {
			if err := _jobService.SessionStore.AppendConversation(ctx, job.SessionId, job.JobPayload); err != nil {
				logger.Error("Failed to save conversation history", "err", err)
			}
		}
	}

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		job.Status = jobmodel.JobStatusComplete
	}
	saveJobState(ctx, job, job.Status)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func extractDocument(job jobmodel.Job, ctx context.Context, logger *logger_i.Logger) jobmodel.Job {
	return _docqaService.ExtractDocument(ctx, job)
}

func processQuestion(job jobmodel.Job, ctx context.Context, logger *logger_i.Logger) jobmodel.Job {
	messageHistory, err := _jobService.SessionStore.GetHistory(ctx, job.SessionId)
	if err != nil {
		logger.Error("Failed to get conversation history", "err", err)
	}
	return _docqaService.ProcessQuestion(ctx, job, messageHistory)
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}
