package adapter

import (
	"fmt"
	"time"

	"github.com/nvasani/findocqa/internal/api"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:     string(job.Status),
		Answer:     toAnswerResponse(job.JobPayload),
		Extraction: toExtractionResponse(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		SessionId: job.SessionId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func toAnswerResponse(payload jobModel.JobPayload) *api.AnswerResponse {
	if payload.Answer == "" {
		return nil
	}

	return &api.AnswerResponse{
		Question:   payload.Question,
		Answer:     payload.Answer,
		Source:     payload.Source,
		Confidence: payload.Confidence,
	}
}

func toExtractionResponse(job jobModel.Job) *api.ExtractionResponse {
	if job.JobType != jobModel.JobTypeExtract || job.Status != jobModel.JobStatusComplete {
		return nil
	}

	return &api.ExtractionResponse{
		Document:     job.JobPayload.ExtractFileName,
		SectionCount: job.JobPayload.SectionCount,
	}
}

func ToDocumentList(sessionId string, records map[string]docModel.DocumentRecord) api.DocumentListResponse {
	response := api.DocumentListResponse{
		SessionId: sessionId,
		Documents: make([]api.DocumentSummary, 0, len(records)),
	}
	for _, record := range records {
		response.Documents = append(response.Documents, api.DocumentSummary{
			Name:        record.Name,
			ContentType: string(record.ContentType),
			ExtractedAt: record.ExtractedAt,
			Financial:   record.Financial,
		})
	}
	return response
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		SessionId: "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
