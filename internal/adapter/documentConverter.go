package adapter

import (
	"fmt"
	"net/http"

	"github.com/snipbot/ragservice/internal/api"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
)

func ToInitIngestResponse(id string) api.InitIngestResponse {
	return api.InitIngestResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("documents/%s", id),
	}
}

func ToDocumentResponse(doc docmodel.DocumentRecord) api.DocumentResponse {

	var errorPtr *api.OutgoingError
	if doc.ErrorMessage != "" {
		errorPtr = &api.OutgoingError{
			Code:    http.StatusUnprocessableEntity,
			Message: doc.ErrorMessage,
			Retry:   true, //a re-upload of the same document id is always safe
		}
	}

	return api.DocumentResponse{
		Id:          doc.ID,
		TenantId:    doc.TenantID,
		Filename:    doc.Filename,
		FileType:    string(doc.Format),
		FileSize:    doc.SizeBytes,
		Status:      string(doc.Status),
		ChunkCount:  doc.ChunkCount,
		Error:       errorPtr,
		CreatedTime: doc.CreatedTime,
		ProcessedAt: doc.ProcessedAt,
	}
}

func ToDocumentListResponse(tenantID string, docs []docmodel.DocumentRecord) api.DocumentListResponse {
	responses := make([]api.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, ToDocumentResponse(doc))
	}
	return api.DocumentListResponse{TenantId: tenantID, Documents: responses}
}

func ToRetrieveResponse(contextBlock string, found bool) api.RetrieveResponse {
	return api.RetrieveResponse{Context: contextBlock, Found: found}
}

func BadRequest(id string, error string, code int) api.DocumentResponse {
	return api.DocumentResponse{
		Id:     id,
		Status: string(api.ExternalStatusError),
		Error: &api.OutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
