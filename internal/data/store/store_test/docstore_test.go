package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/data/redisstore"
	"github.com/snipbot/ragservice/internal/data/store"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
)

func newRegistry(t *testing.T) *store.RedisDocumentStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestDocumentStore(redisstore.NewTestStore(client))
}

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	record := docmodel.DocumentRecord{
		ID:          "doc_abc_123",
		TenantID:    "tenant-a",
		Filename:    "handbook.pdf",
		Format:      ragmodel.FormatPDF,
		SizeBytes:   1024,
		Status:      docmodel.StatusPending,
		CreatedTime: time.Now().UTC().Truncate(time.Second),
	}

	if err := registry.SaveDocument(ctx, record); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, found := registry.GetDocument(ctx, record.ID)
	if !found {
		t.Fatal("saved record not found")
	}
	if got.Filename != record.Filename || got.Status != record.Status || got.Format != record.Format {
		t.Errorf("round trip altered the record: %+v", got)
	}

	// Status transition overwrites in place.
	record.Status = docmodel.StatusCompleted
	record.ChunkCount = 7
	record.ProcessedAt = time.Now().UTC().Truncate(time.Second)
	if err := registry.SaveDocument(ctx, record); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ = registry.GetDocument(ctx, record.ID)
	if got.Status != docmodel.StatusCompleted || got.ChunkCount != 7 {
		t.Errorf("update lost fields: %+v", got)
	}

	registry.DeleteDocument(ctx, record)
	if _, found := registry.GetDocument(ctx, record.ID); found {
		t.Error("deleted record still readable")
	}
	if docs := registry.ListDocuments(ctx, record.TenantID); len(docs) != 0 {
		t.Errorf("tenant listing still has %d records after delete", len(docs))
	}
}

func TestRedisDocumentStore_ListPerTenant(t *testing.T) {
	registry := newRegistry(t)
	ctx := context.Background()

	for _, rec := range []docmodel.DocumentRecord{
		{ID: "doc-1", TenantID: "tenant-a", Filename: "a.txt", Status: docmodel.StatusCompleted},
		{ID: "doc-2", TenantID: "tenant-a", Filename: "b.txt", Status: docmodel.StatusFailed},
		{ID: "doc-3", TenantID: "tenant-b", Filename: "c.txt", Status: docmodel.StatusCompleted},
	} {
		if err := registry.SaveDocument(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	if docs := registry.ListDocuments(ctx, "tenant-a"); len(docs) != 2 {
		t.Errorf("tenant-a has %d records, want 2", len(docs))
	}
	if docs := registry.ListDocuments(ctx, "tenant-b"); len(docs) != 1 {
		t.Errorf("tenant-b has %d records, want 1", len(docs))
	}
	if docs := registry.ListDocuments(ctx, "tenant-c"); len(docs) != 0 {
		t.Errorf("unknown tenant has %d records, want 0", len(docs))
	}
}

func TestRedisDocumentStore_GetMissing(t *testing.T) {
	registry := newRegistry(t)
	if _, found := registry.GetDocument(context.Background(), "nope"); found {
		t.Error("missing record reported as found")
	}
}

func TestInMemoryDocumentStore_MirrorsRedisSemantics(t *testing.T) {
	registry := store.InitInMemoryDocumentStore()
	ctx := context.Background()

	rec := docmodel.DocumentRecord{ID: "doc-1", TenantID: "tenant-a", Status: docmodel.StatusProcessing}
	if err := registry.SaveDocument(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, found := registry.GetDocument(ctx, "doc-1")
	if !found || got.Status != docmodel.StatusProcessing {
		t.Errorf("got %+v found=%v", got, found)
	}
	if docs := registry.ListDocuments(ctx, "tenant-a"); len(docs) != 1 {
		t.Errorf("listing has %d records, want 1", len(docs))
	}

	registry.DeleteDocument(ctx, rec)
	if _, found := registry.GetDocument(ctx, "doc-1"); found {
		t.Error("deleted record still present")
	}
}
