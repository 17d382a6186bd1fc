package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
)

// TenantStore owns per-tenant collections inside the vector index. Collection
// scoping is the only tenant-isolation mechanism for retrieved context, so no
// call may ever cross collection boundaries.
type TenantStore interface {
	// EnsureCollection creates the tenant's collection configured for cosine
	// similarity if it does not exist yet. Idempotent.
	EnsureCollection(ctx context.Context, tenantID string) error

	// UpsertChunks inserts or replaces chunks under their deterministic ids.
	UpsertChunks(ctx context.Context, tenantID string, chunks []ragmodel.Chunk) error

	// Query returns the k nearest chunks by cosine distance, nearest first.
	// A tenant with no collection yet is a soft miss: empty result, nil error.
	Query(ctx context.Context, tenantID string, queryText string, k int) ([]ragmodel.Match, error)

	// DeleteByDocument removes every chunk of one document. A missing
	// collection or an unknown document id is a no-op.
	DeleteByDocument(ctx context.Context, tenantID string, documentID string) error

	// DeleteCollection removes the tenant's whole collection. No-op if absent.
	DeleteCollection(ctx context.Context, tenantID string) error
}

// CollectionName maps a tenant id to its collection. Pure function, no
// lookup. Tenant ids are canonical UUIDs, enforced by
// ragmodel.ParseTenantID at every entry point, so folding the dashes away
// cannot make two distinct tenants collide.
func CollectionName(tenantID string) string {
	return config.CollectionPrefix + strings.ReplaceAll(tenantID, "-", "_")
}

// ChunkPointID derives the stable vector-index id for one chunk. Same tenant,
// document and ordinal always hash to the same UUID, which is what makes
// re-insertion idempotent and per-document deletion exact.
func ChunkPointID(tenantID, documentID string, ordinal int) string {
	raw := fmt.Sprintf("%s_%s_%d", tenantID, documentID, ordinal)
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(raw)).String()
}
