package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
	"github.com/sibylline/sibyl/pkg/utils/json"
)

// TraceStore is a BoltDB-backed trace sink for deployments that want
// durable traces without an elasticsearch cluster.
type TraceStore struct {
	db *bolt.DB
}

// NewTraceStore creates a new TraceStore on an opened DB.
func NewTraceStore(db *DB) *TraceStore {
	return &TraceStore{db: db.Bolt()}
}

func (s *TraceStore) Upsert(_ context.Context, doc *entity.TraceDocument) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTraceStore)
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal trace: %w", err)
		}
		return b.Put([]byte(doc.RunID), data)
	})
}

func (s *TraceStore) Get(_ context.Context, runID string) (*entity.TraceDocument, error) {
	var doc entity.TraceDocument
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTraceStore)
		data := b.Get([]byte(runID))
		if data == nil {
			return errno.ErrTraceNotFound
		}
		return json.Unmarshal(data, &doc)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *TraceStore) Info(_ context.Context) (*repo.StoreInfo, error) {
	// A read transaction doubles as the liveness probe.
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(bucketTraceStore).Stats().KeyN
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltdb probe failed: %w", err)
	}
	return &repo.StoreInfo{
		Kind:        "boltdb",
		ClusterName: s.db.Path(),
		Version:     fmt.Sprintf("%d traces", count),
	}, nil
}

// Close is a no-op; the shared DB handle is closed by the module.
func (s *TraceStore) Close() error { return nil }
