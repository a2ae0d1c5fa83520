package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics counts domain events that are not visible in HTTP traffic
type CatalogMetrics struct {
	associationChanges *prometheus.CounterVec
	importedStores     *prometheus.CounterVec
	jobRuns            *prometheus.CounterVec
}

func NewCatalogMetrics(reg prometheus.Registerer, prefix string) *CatalogMetrics {
	m := &CatalogMetrics{
		associationChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "association_operations_total",
				Help:      "Association attach/detach calls by relation and whether a row changed",
			},
			[]string{"relation", "op", "changed"},
		),
		importedStores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "import_stores_total",
				Help:      "Stores processed by the bulk import",
			},
			[]string{"result"},
		),
		jobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: prefix,
				Name:      "background_job_runs_total",
				Help:      "Background job executions",
			},
			[]string{"job", "result"},
		),
	}

	reg.MustRegister(m.associationChanges, m.importedStores, m.jobRuns)
	return m
}

// ObserveAssociation records an attach or detach on relation
func (m *CatalogMetrics) ObserveAssociation(relation, op string, changed bool) {
	if m == nil {
		return
	}
	m.associationChanges.WithLabelValues(relation, op, strconv.FormatBool(changed)).Inc()
}

// ObserveImport records one imported store, or one failed record when err is set
func (m *CatalogMetrics) ObserveImport(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.importedStores.WithLabelValues(result).Inc()
}

// ObserveJobRun records a finished job run
func (m *CatalogMetrics) ObserveJobRun(job string, interrupted bool) {
	if m == nil {
		return
	}
	result := "completed"
	if interrupted {
		result = "interrupted"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}
