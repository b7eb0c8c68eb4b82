package elastic

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

func newESStub(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestUpsertPutsDocumentByRunID(t *testing.T) {
	srv, reqs := newESStub(t, http.StatusCreated, `{"result":"created"}`)

	store, err := NewTraceStore(Config{Addr: srv.URL, APIKey: "secret", Refresh: "wait_for"})
	require.NoError(t, err)

	run := entity.NewRun("How many customers are from Germany?", "single_agent")
	run.Finish("11")
	require.NoError(t, store.Upsert(context.Background(), entity.BuildTraceDocument(run)))

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/agent_traces/_doc/"+run.ID, got.path)
	assert.Equal(t, "refresh=wait_for", got.query)
	assert.Equal(t, "ApiKey secret", got.auth)
	assert.Contains(t, got.body, `"run_id":"`+run.ID+`"`)
	assert.Contains(t, got.body, `"agent_type":"single_agent"`)
}

func TestUpsertReportsNon2xx(t *testing.T) {
	srv, _ := newESStub(t, http.StatusServiceUnavailable, `{"error":"index_blocked"}`)

	store, err := NewTraceStore(Config{Addr: srv.URL})
	require.NoError(t, err)

	run := entity.NewRun("q", "single_agent")
	run.Finish("a")
	err = store.Upsert(context.Background(), entity.BuildTraceDocument(run))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "index_blocked")
}

func TestInfoParsesClusterMetadata(t *testing.T) {
	srv, reqs := newESStub(t, http.StatusOK, `{"cluster_name":"traces-prod","version":{"number":"8.13.4"}}`)

	store, err := NewTraceStore(Config{Addr: srv.URL + "/"})
	require.NoError(t, err)

	info, err := store.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "elasticsearch", info.Kind)
	assert.Equal(t, "traces-prod", info.ClusterName)
	assert.Equal(t, "8.13.4", info.Version)

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/", (*reqs)[0].path)
}

func TestInfoFailsWhenClusterDown(t *testing.T) {
	srv, _ := newESStub(t, http.StatusOK, `{}`)
	store, err := NewTraceStore(Config{Addr: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = store.Info(context.Background())
	assert.Error(t, err)
}

func TestNewTraceStoreValidatesConfig(t *testing.T) {
	_, err := NewTraceStore(Config{})
	assert.Error(t, err)

	_, err = NewTraceStore(Config{Addr: "http://es:9200", Refresh: "sometimes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh policy")
}
