package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/timeboard/catalog"
	"github.com/on-the-ground/timeboard/lecture"
)

func TestHTTPCatalog_FetchDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/전산.json":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]lecture.Lecture{
				{ID: "CS101", Title: "자료구조", Grade: 1, Credits: "3", Major: "전산", Schedule: "월1,2"},
			})
		case "/broken.json":
			w.Write([]byte("{not json"))
		case "/teapot.json":
			w.WriteHeader(http.StatusTeapot)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cat := catalog.NewHTTPCatalog(srv.URL + "/")

	t.Run("ok", func(t *testing.T) {
		lectures, err := cat.FetchDataset(context.Background(), "전산")
		require.NoError(t, err)
		require.Len(t, lectures, 1)
		assert.Equal(t, "CS101", lectures[0].ID)
		assert.Equal(t, "월1,2", lectures[0].Schedule)
	})

	t.Run("missing dataset", func(t *testing.T) {
		_, err := cat.FetchDataset(context.Background(), "법학")
		assert.ErrorIs(t, err, catalog.ErrUnknownDataset)
	})

	t.Run("unexpected status", func(t *testing.T) {
		_, err := cat.FetchDataset(context.Background(), "teapot")
		require.Error(t, err)
		assert.NotErrorIs(t, err, catalog.ErrUnknownDataset)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := cat.FetchDataset(context.Background(), "broken")
		assert.Error(t, err)
	})
}
