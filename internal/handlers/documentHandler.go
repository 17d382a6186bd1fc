package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/snipbot/ragservice/internal/adapter"
	"github.com/snipbot/ragservice/internal/adapter/utils"
	"github.com/snipbot/ragservice/internal/api"
	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/internal/domain/jobmodel"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostDocumentHandler receives a document for a tenant and queues its ingestion.
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data and queues an ingestion job. Re-uploading with the same document happening twice is serialized per document.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        tenantID  path      string  true  "Tenant ID (UUID)"
// @Param        document  formData  file    true  "The document to ingest (pdf, docx, txt, md, html, csv, xlsx, xls)"
// @Success      202  {object}  api.InitIngestResponse "Accepted - returns document id and status URL"
// @Failure      400  {object}  api.DocumentResponse "Bad Request - invalid tenant id, missing file, oversized upload, or unsupported format"
// @Failure      500  {object}  api.DocumentResponse "Internal Server Error"
// @Router       /tenants/{tenantID}/documents [post]
func PostDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		tenantId, err := ragmodel.ParseTenantID(utils.GetChiURLParam(r, "tenantID"))
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid tenant id")
			return
		}

		err = r.ParseMultipartForm(config.MaxUploadSizeBytes)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		format, ok := formatFromFilename(fileMetadata.Filename)
		if !ok {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Unsupported file format")
			return
		}

		content, err := io.ReadAll(io.LimitReader(fileReader, config.MaxUploadSizeBytes+1))
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Read error")
			return
		}
		if int64(len(content)) > config.MaxUploadSizeBytes {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large")
			return
		}

		traceId := r.Context().Value(config.TRACE_ID_KEY).(string)
		newJob := newJobData{
			id:         utils.GetNewUUID(),
			jobType:    jobmodel.JobTypeIngest,
			tenantId:   tenantId,
			filename:   fileMetadata.Filename,
			format:     string(format),
			content:    content,
			traceId:    traceId,
		}
		newJob.documentId = newJob.id

		record := docmodel.DocumentRecord{
			ID:          newJob.documentId,
			TenantID:    tenantId,
			Filename:    fileMetadata.Filename,
			Format:      format,
			SizeBytes:   int64(len(content)),
			Status:      docmodel.StatusPending,
			CreatedTime: time.Now(),
		}
		if err := SaveDocumentRecord(traceId, record); err != nil {
			logRH.Error("Couldn't save document record", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, newJob.documentId, "Storage error")
			return
		}

		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitIngestResponse(newJob.documentId))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetDocumentHandler godoc
// @Summary      Get document status
// @Description  Retrieves the registry record of one document, including its ingestion status and chunk count.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse  "The document record"
// @Failure      404  {object}  api.DocumentResponse  "Document not found"
// @Router       /documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := GetDocumentRecord(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Document Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Document not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(result))
	}
}

// ListDocumentsHandler godoc
// @Summary      List a tenant's documents
// @Description  Returns every registry record belonging to the tenant.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        tenantID  path  string  true  "Tenant ID (UUID)"
// @Success      200  {object}  api.DocumentListResponse
// @Failure      400  {object}  api.DocumentResponse "Invalid tenant id"
// @Router       /tenants/{tenantID}/documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		tenantId, err := ragmodel.ParseTenantID(utils.GetChiURLParam(r, "tenantID"))
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid tenant id")
			return
		}
		docs := ListTenantDocuments(tenantId, r.Context().Value(config.TRACE_ID_KEY).(string))
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(tenantId, docs))
	}
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Queues removal of the document's chunks from the tenant index and of its registry record.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      202  {object}  api.InitIngestResponse "Deletion queued"
// @Failure      404  {object}  api.DocumentResponse "Document not found"
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		traceId := r.Context().Value(config.TRACE_ID_KEY).(string)

		doc, isFound := GetDocumentRecord(idString, traceId)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Document not found")
			return
		}

		newJob := newJobData{
			id:         utils.GetNewUUID(),
			jobType:    jobmodel.JobTypeDeleteDocument,
			tenantId:   doc.TenantID,
			documentId: doc.ID,
			traceId:    traceId,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitIngestResponse(doc.ID))
	}
}

// DropTenantHandler godoc
// @Summary      Drop a tenant's collection
// @Description  Queues removal of the tenant's entire vector collection.
// @Tags         Tenants
// @Accept       json
// @Produce      json
// @Param        tenantID  path  string  true  "Tenant ID (UUID)"
// @Success      202  {object}  api.InitIngestResponse "Drop queued"
// @Failure      400  {object}  api.DocumentResponse "Invalid tenant id"
// @Router       /tenants/{tenantID}/collection [delete]
func DropTenantHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		tenantId, err := ragmodel.ParseTenantID(utils.GetChiURLParam(r, "tenantID"))
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid tenant id")
			return
		}

		newJob := newJobData{
			id:       utils.GetNewUUID(),
			jobType:  jobmodel.JobTypeDropTenant,
			tenantId: tenantId,
			traceId:  r.Context().Value(config.TRACE_ID_KEY).(string),
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitIngestResponse(newJob.id))
	}
}

// RetrieveHandler godoc
// @Summary      Retrieve context for a query
// @Description  Embeds the query, searches the tenant's collection, and returns the formatted context block. Found is false when the tenant has no close-enough chunks.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        tenantID  path  string               true  "Tenant ID (UUID)"
// @Param        request   body  api.RetrieveRequest  true  "The query text"
// @Success      200  {object}  api.RetrieveResponse
// @Failure      400  {object}  api.DocumentResponse "Invalid tenant id or empty query"
// @Failure      500  {object}  api.DocumentResponse "Embedding or search failure"
// @Router       /tenants/{tenantID}/retrieve [post]
func RetrieveHandler(w http.ResponseWriter, request *http.Request) {
	if validateContext(request.Context()) {

		tenantId, tenantErr := ragmodel.ParseTenantID(utils.GetChiURLParam(request, "tenantID"))
		if tenantErr != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid tenant id")
			return
		}

		var requestData api.RetrieveRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Retrieve handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Query == "" {
			logRH.Warn("Bad Retrieve Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
			return
		}

		contextBlock, found, err := Retrieve(request.Context(), tenantId, requestData.Query)
		if err != nil {
			logRH.Error("Retrieval failed", "tenant", tenantId, "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Retrieval failed")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToRetrieveResponse(contextBlock, found))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}
