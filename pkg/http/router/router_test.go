package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/http/usecases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	service, err := usecases.NewPartitionService(zap.NewNop(), 1, 0)
	require.NoError(t, err)
	return NewAPI(zap.NewNop()).Handler(service)
}

func post(t *testing.T, handler http.Handler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/partition", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPartitionEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := post(t, handler, "application/json", `{"vertices":[1,2,3,4],"edges":[[1,4],[2,3]]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			GroupA  []int64 `json:"group_a"`
			GroupB  []int64 `json:"group_b"`
			Cost    int     `json:"cost"`
			CutSize int     `json:"cut_size"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{2, 3}, body.Data.GroupA)
	assert.Equal(t, []int64{1, 4}, body.Data.GroupB)
	assert.Equal(t, -4, body.Data.Cost)
	assert.Equal(t, 0, body.Data.CutSize)
}

func TestPartitionEndpointNetlist(t *testing.T) {
	handler := newTestHandler(t)

	rec := post(t, handler, "application/json", `{"netlist":"net1: 1 2 3\nnet2: 3 4","passes":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"group_a"`)
}

func TestPartitionEndpointErrors(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
	}{
		{"malformed json", "application/json", `{"edges":`, http.StatusBadRequest},
		{"neither edges nor netlist", "application/json", `{"passes":1}`, http.StatusBadRequest},
		{"edges and netlist", "application/json", `{"edges":[[1,2]],"netlist":"net1: 1 2"}`, http.StatusBadRequest},
		{"too many passes", "application/json", `{"edges":[[1,2]],"passes":1000}`, http.StatusBadRequest},
		{"negative vertex", "application/json", `{"vertices":[-1],"edges":[]}`, http.StatusBadRequest},
		{"self-loop", "application/json", `{"edges":[[1,2],[3,3]]}`, http.StatusUnprocessableEntity},
		{"bad netlist", "application/json", `{"netlist":"net1 1 2"}`, http.StatusUnprocessableEntity},
		{"not json", "text/plain", `1 2`, http.StatusUnsupportedMediaType},
		{"no content type", "", `{}`, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, handler, tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestHeartbeat(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	handler := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
