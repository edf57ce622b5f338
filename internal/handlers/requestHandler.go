package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nvasani/findocqa/internal/adapter"
	"github.com/nvasani/findocqa/internal/adapter/utils"
	"github.com/nvasani/findocqa/internal/api"
	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/docqa/extract"
	"github.com/nvasani/findocqa/internal/domain/docModel"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

var logRH *logger_i.Logger

// jobHandler builds jobs from this, handlers never touch jobModel directly
type newJobData struct {
	id                string
	sessionId         string
	question          string
	documentScope     string
	isNewSession      bool
	traceId           string
	isDocumentExtract bool
	documentName      string
	documentSource    string
}

// AskHandler godoc
// @Summary      Ask a question about uploaded documents
// @Description  Accepts a question scoped to a session, queues a background answering job, and returns a job ID to track status.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest       true  "Question, session ID and optional document scope"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or unknown session"
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.AskRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Ask handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateAskRequest(requestData) {

			logRH.Warn("Bad Ask Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionId, "Bad Request")
			return
		}
		processQuestionJob(request, w, requestData)
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// UploadHandler godoc
// @Summary      Upload financial documents
// @Description  Receives one or more files via multipart/form-data, saves them to a temporary directory, and queues one extraction job per file. A session is created when no session_id is supplied.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        session_id  formData  string  false  "Existing session to add documents to"
// @Param        documents   formData  file    true   "PDF, spreadsheet or text documents to upload"
// @Success      202  {object}  api.UploadResponse "Accepted - returns session_id and job IDs"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing files, unsupported format or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /documents [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		err := r.ParseMultipartForm(config.MaxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileHeaders := r.MultipartForm.File[config.UploadFormField]
		if len(fileHeaders) == 0 {
			WriteErrorResponse(w, http.StatusBadRequest, "", "At least one file is required")
			return
		}

		//unsupported extensions are rejected before anything touches disk
		for _, header := range fileHeaders {
			if extract.GetDocType(header.Filename) == docModel.ERR {
				logRH.Warn("Unsupported document format", "file", header.Filename)
				WriteErrorResponse(w, http.StatusBadRequest, "", "Unsupported document format: "+header.Filename)
				return
			}
		}

		sessionId := r.FormValue("session_id")
		isNewSession := false
		if sessionId == "" {
			sessionId = utils.GetNewUUID()
			isNewSession = true
			logRH.Debug(" New session : ", "sessionId:", sessionId)
		} else if !ValidateSession(sessionId) {
			WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Unknown session")
			return
		}

		jobs := make([]api.InitJobResponse, 0, len(fileHeaders))
		for _, header := range fileHeaders {
			tempFilePath, err := saveUploadedFile(header, targetDir)
			if err != nil {
				logRH.Error("Couldn't store uploaded file :", "file", header.Filename, "err", err)
				WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Storage error")
				return
			}
			jobs = append(jobs, processExtractJob(r, sessionId, isNewSession, header.Filename, tempFilePath))
			isNewSession = false //only the first job initializes the session
		}

		writeJsonResponse(w, http.StatusAccepted, api.UploadResponse{SessionId: sessionId, Jobs: jobs})
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// ListDocumentsHandler godoc
// @Summary      List extracted documents in a session
// @Description  Returns the extracted documents of a session along with their normalized financial data.
// @Tags         Documents
// @Produce      json
// @Param        session_id  query     string  true  "Session ID"
// @Success      200  {object}  api.DocumentListResponse "Documents with extracted financial data"
// @Failure      400  {object}  api.JobResponse "Missing or unknown session"
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		sessionId := r.URL.Query().Get("session_id")
		if !ValidateSession(sessionId) {
			WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Unknown session")
			return
		}

		records, err := GetSessionDocuments(r.Context(), sessionId)
		if err != nil {
			logRH.Error("Couldn't read session documents :", "sessionId", sessionId, "err", err)
			WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Storage error")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentList(sessionId, records))
	}
}
