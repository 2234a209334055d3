package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/datastructure"
	helper "github.com/lintang-b-s/netlist-kl-partitioner/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/partitioner"
	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/util"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeService struct {
	err         error
	passes      int
	orderByCost bool
	netlist     string
	edges       []datastructure.Edge
}

func (f *fakeService) PartitionEdges(ctx context.Context, vertices []int64, edges []datastructure.Edge, passes int,
	orderByCost bool) (*partitioner.Result, error) {
	f.edges, f.passes, f.orderByCost = edges, passes, orderByCost
	if f.err != nil {
		return nil, f.err
	}
	return &partitioner.Result{GroupA: []int64{1}, GroupB: []int64{2}, Cost: 2, CutSize: 1}, nil
}

func (f *fakeService) PartitionNetlist(ctx context.Context, netlist string, passes int, orderByCost bool) (*partitioner.Result, error) {
	f.netlist, f.passes, f.orderByCost = netlist, passes, orderByCost
	if f.err != nil {
		return nil, f.err
	}
	return &partitioner.Result{}, nil
}

func serve(service PartitionService, body string) *httptest.ResponseRecorder {
	return serveAPI(New(service, zap.NewNop()), body)
}

func serveAPI(api *partitionAPI, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	api.Routes(helper.NewRouteGroup(router, "/api"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/partition", strings.NewReader(body)))
	return rec
}

func TestPartitionForwardsRequest(t *testing.T) {
	service := &fakeService{}
	rec := serve(service, `{"edges":[[1,2]],"passes":3,"order_by_cost":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []datastructure.Edge{datastructure.NewEdge(1, 2)}, service.edges)
	assert.Equal(t, 3, service.passes)
	assert.True(t, service.orderByCost)
	assert.Contains(t, rec.Body.String(), `"cut_size": 1`)

	service = &fakeService{}
	rec = serve(service, `{"netlist":"net1: 1 2"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "net1: 1 2", service.netlist)
}

func TestPartitionStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"input error", util.WrapErrorf(nil, util.ErrInput, "self-loop"), http.StatusUnprocessableEntity},
		{"bad param", util.WrapErrorf(nil, util.ErrBadParamInput, "too large"), http.StatusBadRequest},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
		{"invariant", util.WrapErrorf(nil, util.ErrInvariant, "unbalanced"), http.StatusInternalServerError},
		{"canceled", context.Canceled, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, `{"edges":[[1,2]]}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	rec := serve(&fakeService{err: errors.New("disk on fire")}, `{"edges":[[1,2]]}`)
	assert.NotContains(t, rec.Body.String(), "disk on fire")
	assert.Contains(t, rec.Body.String(), util.MessageInternalServerError)
}

func TestPartitionBodyLimit(t *testing.T) {
	api := New(&fakeService{}, zap.NewNop())
	api.maxBodyBytes = 32

	rec := serveAPI(api, `{"edges":[[1,2],[2,3],[3,4],[4,5],[5,6],[6,7]]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = serveAPI(api, `{"edges":[[1,2]]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}
