package repo

import (
	"context"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
)

// TraceRepo persists finished run traces. Implementations live under
// store/ (elastic, boltdb, inmemory). The repo is injected where needed;
// a nil repo means trace storage is disabled and callers must degrade
// gracefully instead of failing the run.
type TraceRepo interface {
	// Upsert writes the document keyed by its run id, overwriting any
	// previous version. Writing the same document twice is a no-op.
	Upsert(ctx context.Context, doc *entity.TraceDocument) error

	// Info probes the backend and describes it. An error means the
	// backend is configured but unreachable.
	Info(ctx context.Context) (*StoreInfo, error)

	// Close releases any underlying handles.
	Close() error
}

// StoreInfo describes a live trace backend.
type StoreInfo struct {
	// Kind is the backend type: "elasticsearch", "boltdb" or "inmemory".
	Kind string `json:"kind"`

	// ClusterName is reported by elasticsearch; other backends fill in
	// a fixed name.
	ClusterName string `json:"cluster_name"`

	// Version is the backend version when known.
	Version string `json:"version"`
}
