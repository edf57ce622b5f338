package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nvasani/findocqa/internal/adapter"
	"github.com/nvasani/findocqa/internal/adapter/utils"
	"github.com/nvasani/findocqa/internal/api"
	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

// saveUploadedFile copies a multipart file into the temporary directory with a
// unique on-disk name, returning the temp path.
func saveUploadedFile(header *multipart.FileHeader, targetDir string) (string, error) {
	fileReader, err := header.Open()
	if err != nil {
		return "", err
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		return "", err
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		return "", err
	}
	return tempFilePath, nil
}

func processQuestionJob(request *http.Request, w http.ResponseWriter, requestData api.AskRequest) {
	documentScope := requestData.Document
	if documentScope == "" {
		documentScope = "all"
	}

	newJob := newJobData{
		id:            utils.GetNewUUID(),
		sessionId:     requestData.SessionId,
		question:      requestData.Question,
		documentScope: documentScope,
		traceId:       request.Context().Value(config.TRACE_ID_KEY).(string),
	}
	CreateNewJob(newJob)
	res := adapter.ToInitJobResponse(newJob.id)
	writeJsonResponse(w, http.StatusAccepted, res)
}

func processExtractJob(request *http.Request, sessionId string, isNewSession bool, docName string, docPath string) api.InitJobResponse {
	newJob := newJobData{
		id:                utils.GetNewUUID(),
		sessionId:         sessionId,
		isNewSession:      isNewSession,
		traceId:           request.Context().Value(config.TRACE_ID_KEY).(string),
		documentName:      docName,
		documentSource:    docPath,
		isDocumentExtract: true,
	}
	CreateNewJob(newJob)
	return adapter.ToInitJobResponse(newJob.id)
}
