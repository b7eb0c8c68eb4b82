package inmemory

import (
	"context"
	"sync"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
)

// TraceStore keeps trace documents in process memory, keyed by run id.
// Used for tests and single-node setups without elasticsearch.
type TraceStore struct {
	mu     sync.RWMutex
	traces map[string]*entity.TraceDocument
}

func NewTraceStore() *TraceStore {
	return &TraceStore{
		traces: make(map[string]*entity.TraceDocument),
	}
}

func (s *TraceStore) Upsert(_ context.Context, doc *entity.TraceDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traces[doc.RunID] = doc
	return nil
}

func (s *TraceStore) Get(_ context.Context, runID string) (*entity.TraceDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.traces[runID]
	if !ok {
		return nil, errno.ErrTraceNotFound
	}
	return doc, nil
}

// Len reports how many distinct runs are stored.
func (s *TraceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.traces)
}

func (s *TraceStore) Info(_ context.Context) (*repo.StoreInfo, error) {
	return &repo.StoreInfo{Kind: "inmemory", ClusterName: "inmemory"}, nil
}

func (s *TraceStore) Close() error { return nil }
