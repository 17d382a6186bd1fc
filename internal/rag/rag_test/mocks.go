package rag_test

import (
	"context"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
)

// MockTenantStore implements vectorstore.TenantStore
type MockTenantStore struct {
	// Control fields to simulate different behaviors
	OnEnsureCollection func(ctx context.Context, tenantID string) error
	OnUpsertChunks     func(ctx context.Context, tenantID string, chunks []ragmodel.Chunk) error
	OnQuery            func(ctx context.Context, tenantID string, queryText string, k int) ([]ragmodel.Match, error)
	OnDeleteByDocument func(ctx context.Context, tenantID string, documentID string) error
	OnDeleteCollection func(ctx context.Context, tenantID string) error

	// Calls records the method order for sequencing assertions.
	Calls []string
}

func (m *MockTenantStore) EnsureCollection(ctx context.Context, tenantID string) error {
	m.Calls = append(m.Calls, "EnsureCollection")
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx, tenantID)
	}
	return nil
}

func (m *MockTenantStore) UpsertChunks(ctx context.Context, tenantID string, chunks []ragmodel.Chunk) error {
	m.Calls = append(m.Calls, "UpsertChunks")
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, tenantID, chunks)
	}
	return nil
}

func (m *MockTenantStore) Query(ctx context.Context, tenantID string, queryText string, k int) ([]ragmodel.Match, error) {
	m.Calls = append(m.Calls, "Query")
	if m.OnQuery != nil {
		return m.OnQuery(ctx, tenantID, queryText, k)
	}
	return nil, nil
}

func (m *MockTenantStore) DeleteByDocument(ctx context.Context, tenantID string, documentID string) error {
	m.Calls = append(m.Calls, "DeleteByDocument")
	if m.OnDeleteByDocument != nil {
		return m.OnDeleteByDocument(ctx, tenantID, documentID)
	}
	return nil
}

func (m *MockTenantStore) DeleteCollection(ctx context.Context, tenantID string) error {
	m.Calls = append(m.Calls, "DeleteCollection")
	if m.OnDeleteCollection != nil {
		return m.OnDeleteCollection(ctx, tenantID)
	}
	return nil
}
