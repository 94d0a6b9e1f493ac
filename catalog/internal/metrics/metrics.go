// Package metrics records catalog activity in a private Prometheus registry
// and exposes it over HTTP or as a text dump.
package metrics

import (
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Query operation labels for catalog_queries_total.
const (
	OpCountWithTag = "count_with_tag"
	OpThemeExists  = "theme_exists"
	OpDistinctTags = "distinct_tags"
	OpSumPieces    = "sum_pieces"
	OpPartition    = "partition_pieces"
	OpCountByTheme = "count_by_theme"
	OpListSets     = "list_sets"
)

// Metrics holds the catalog collectors.
type Metrics struct {
	reg     *prometheus.Registry
	queries *prometheus.CounterVec
	records prometheus.Gauge
	reloads *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Queries evaluated against the catalog, by operation.",
		}, []string{"op"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_records_loaded",
			Help: "Number of records in the current catalog snapshot.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Dataset reload attempts, by result.",
		}, []string{"result"}),
	}
	m.reg.MustRegister(m.queries, m.records, m.reloads)
	return m
}

// ObserveQuery counts one evaluation of op.
func (m *Metrics) ObserveQuery(op string) {
	m.queries.WithLabelValues(op).Inc()
}

// SetRecords records the size of the current snapshot.
func (m *Metrics) SetRecords(n int) {
	m.records.Set(float64(n))
}

// ObserveReload counts a reload attempt.
func (m *Metrics) ObserveReload(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// WriteText writes every gathered family to w in the text format.
func (m *Metrics) WriteText(w io.Writer) error {
	mfs, err := m.reg.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	return writeFamilies(w, mfs)
}

func writeFamilies(w io.Writer, mfs []*dto.MetricFamily) error {
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
