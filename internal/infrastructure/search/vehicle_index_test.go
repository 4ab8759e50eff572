package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

type esCall struct {
	method, path string
	body         map[string]any
}

func fakeES(t *testing.T, status int, reply string) (*VehicleIndex, *[]esCall) {
	t.Helper()
	calls := &[]esCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := esCall{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &call.body)
		}
		*calls = append(*calls, call)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := helpers.NewESClient([]string{srv.URL}, "", "")
	require.NoError(t, err)
	return NewVehicleIndex(es, "vehicles"), calls
}

func TestIndex(t *testing.T) {
	x, calls := fakeES(t, http.StatusCreated, `{"result":"created"}`)
	v := &entity.Vehicle{ID: "v1", Name: "Apex GT-R", BrandID: "b1", BasePrice: 89000, UpdatedAt: time.Now()}

	require.NoError(t, x.Index(context.Background(), v, &entity.Brand{ID: "b1", Name: "Apex Motors"}))
	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, http.MethodPut, c.method)
	assert.Equal(t, "/vehicles/_doc/v1", c.path)
	assert.Equal(t, "Apex Motors", c.body["brandName"])
}

func TestDelete_IgnoresMissing(t *testing.T) {
	x, _ := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	assert.NoError(t, x.Delete(context.Background(), "v1"))
}

func TestSearch(t *testing.T) {
	x, calls := fakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"v2"},{"_id":"v1"}]}}`)

	ids, err := x.Search(context.Background(), "apex", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2", "v1"}, ids)

	c := (*calls)[0]
	assert.True(t, strings.HasSuffix(c.path, "/vehicles/_search"))
	assert.EqualValues(t, 5, c.body["size"])
}

func TestSearch_ErrorStatus(t *testing.T) {
	x, _ := fakeES(t, http.StatusBadRequest, `{"error":"bad"}`)

	_, err := x.Search(context.Background(), "apex", 5)
	assert.Error(t, err)
}
