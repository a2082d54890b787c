package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GenerationRequestsTotal counts allocate-and-generate runs by final status.
var GenerationRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_generation_requests_total",
		Help: "Total question generation requests",
	},
	[]string{"status"},
)

// GenerationJobsTotal counts per-type generation jobs by final status.
var GenerationJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_generation_jobs_total",
		Help: "Total per item type generation jobs",
	},
	[]string{"item_type", "status"},
)

// GenerationJobDuration tracks how long one job takes, backend call included.
var GenerationJobDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "question_bank_generation_job_duration_seconds",
		Help:    "Duration of a single item type generation job",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	},
	[]string{"item_type"},
)

// ItemsGeneratedTotal counts parsed records.
var ItemsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_items_generated_total",
		Help: "Total items parsed from backend responses",
	},
	[]string{"item_type"},
)

// ParseShortfallTotal counts requested items the backend did not deliver.
var ParseShortfallTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_parse_shortfall_total",
		Help: "Requested items missing from backend responses",
	},
	[]string{"item_type"},
)

// ParseSurplusTotal counts records that had no requested slot.
var ParseSurplusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_parse_surplus_total",
		Help: "Parsed items beyond the requested count",
	},
	[]string{"item_type"},
)

// SummaryCacheTotal counts summary lookups by result (hit or miss).
var SummaryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_summary_cache_total",
		Help: "Content summary cache lookups",
	},
	[]string{"result"},
)

// AuditWritesTotal counts audit records written or dropped.
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "question_bank_audit_writes_total",
		Help: "Generation audit records processed",
	},
	[]string{"status"},
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
