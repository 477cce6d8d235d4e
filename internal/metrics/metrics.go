package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg         *prometheus.Registry
	SourceRows  *prometheus.CounterVec
	DroppedRows *prometheus.CounterVec

	DuplicateSKUs prometheus.Counter
	SyntheticIDs  prometheus.Counter
	UnpricedSales prometheus.Counter
	RowsLoaded    prometheus.Counter
	RunDuration   prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	sourceRows := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "etl_source_rows_total"}, []string{"source"})
	droppedRows := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "etl_dropped_rows_total"}, []string{"gate"})
	dupSKUs := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_duplicate_skus_removed_total"})
	synthIDs := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_synthetic_order_ids_total"})
	unpriced := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_unpriced_sales_total"})
	loaded := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_loaded_total"})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{Name: "etl_run_duration_seconds"})

	r.MustRegister(sourceRows, droppedRows, dupSKUs, synthIDs, unpriced, loaded, duration)
	return &Registry{
		reg:           r,
		SourceRows:    sourceRows,
		DroppedRows:   droppedRows,
		DuplicateSKUs: dupSKUs,
		SyntheticIDs:  synthIDs,
		UnpricedSales: unpriced,
		RowsLoaded:    loaded,
		RunDuration:   duration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
