package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg, "test", "storecatalog")

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/stores/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.NewHTTPError(http.StatusNotFound, "missing")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "0"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stores/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("storecatalog", "GET", "/stores/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCounter.WithLabelValues("storecatalog", "GET", "/stores/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusCodeCategoryCounter.WithLabelValues("storecatalog", "4xx", "GET", "/stores/:id")))
}

func TestStatusCategory(t *testing.T) {
	assert.Equal(t, "2xx", statusCategory(204))
	assert.Equal(t, "4xx", statusCategory(422))
	assert.Equal(t, "5xx", statusCategory(500))
	assert.Equal(t, "", statusCategory(302))
}

func TestCatalogMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCatalogMetrics(reg, "test")

	m.ObserveAssociation("store_item", "add", true)
	m.ObserveAssociation("store_item", "add", false)
	m.ObserveImport(nil)
	m.ObserveImport(errors.New("duplicate"))
	m.ObserveJobRun("heartbeat", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.associationChanges.WithLabelValues("store_item", "add", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.associationChanges.WithLabelValues("store_item", "add", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importedStores.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("heartbeat", "completed")))

	var nilMetrics *CatalogMetrics
	assert.NotPanics(t, func() { nilMetrics.ObserveImport(nil) })
}

func TestHandler_ExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCatalogMetrics(reg, "test").ObserveJobRun("heartbeat", true)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_background_job_runs_total{job="heartbeat",result="interrupted"} 1`)
}
