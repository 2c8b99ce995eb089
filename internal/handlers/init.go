package handlers

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"perch/pkg/logging"
	"perch/pkg/models"
)

// Aggregator is the engagement read surface the handlers expose over HTTP.
type Aggregator interface {
	GetPostDetail(ctx context.Context, id string) (*models.PostDetail, error)
	GetChildren(ctx context.Context, parentID string, kind models.PostKind, page, pageSize int) (*models.PostPage, error)
}

var (
	svc    Aggregator
	logger logging.Logger

	aggregations       *prometheus.CounterVec
	aggregationLatency *prometheus.HistogramVec
)

// Init initializes the handlers with the aggregation service and logger
func Init(service Aggregator, log logging.Logger) {
	svc = service
	logger = log
}

// InitMetrics wires the aggregation-path metrics. Optional; handlers work
// without them (tests skip this).
func InitMetrics(ops *prometheus.CounterVec, latency *prometheus.HistogramVec) {
	aggregations = ops
	aggregationLatency = latency
}
