// Package monitoring provides the service's health and metrics surfaces.
package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Status is the health state of a check or of the service as a whole.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// worse reports whether b is a worse state than a.
func worse(a, b Status) bool {
	rank := map[Status]int{StatusHealthy: 0, StatusDegraded: 1, StatusUnhealthy: 2}
	return rank[b] > rank[a]
}

// CheckResult is the outcome of a single health check. Latency is filled in
// by the checker; checks only report status and message.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) CheckResult

// HealthStatus is the aggregate report served at /health.
type HealthStatus struct {
	Status    Status                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Timestamp int64                  `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

type namedCheck struct {
	name  string
	check HealthCheck
}

// HealthChecker runs registered checks and aggregates their results. The
// overall status is the worst individual status.
type HealthChecker struct {
	service string
	version string
	checks  []namedCheck
}

// NewHealthChecker creates a checker for the named service.
func NewHealthChecker(service, version string) *HealthChecker {
	return &HealthChecker{service: service, version: version}
}

// AddCheck registers a named health check. Not safe for concurrent use with
// CheckHealth; register everything during startup.
func (hc *HealthChecker) AddCheck(name string, check HealthCheck) {
	hc.checks = append(hc.checks, namedCheck{name: name, check: check})
}

// CheckHealth runs every registered check and returns the aggregate report.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	report := HealthStatus{
		Status:    StatusHealthy,
		Service:   hc.service,
		Version:   hc.version,
		Timestamp: time.Now().Unix(),
		Checks:    make(map[string]CheckResult, len(hc.checks)),
	}

	for _, nc := range hc.checks {
		start := time.Now()
		result := nc.check(ctx)
		if result.Latency == "" {
			result.Latency = time.Since(start).String()
		}
		if result.Status == "" {
			result.Status = StatusUnhealthy
		}
		report.Checks[nc.name] = result
		if worse(report.Status, result.Status) {
			report.Status = result.Status
		}
	}

	return report
}

// Handler serves the health report. Unhealthy maps to 503 so load balancers
// can act on the status code alone.
func (hc *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		report := hc.CheckHealth(c.Request.Context())
		code := http.StatusOK
		if report.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, report)
	}
}

// DatabaseHealthCheck pings the database with a bounded timeout.
func DatabaseHealthCheck(db *sql.DB) HealthCheck {
	return func(ctx context.Context) CheckResult {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: fmt.Sprintf("database ping failed: %v", err),
			}
		}
		return CheckResult{Status: StatusHealthy}
	}
}

// ConfigurationHealthCheck verifies that required configuration values are
// present. Values are captured at registration time.
func ConfigurationHealthCheck(required map[string]string) HealthCheck {
	return func(ctx context.Context) CheckResult {
		var missing []string
		for key, value := range required {
			if value == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return CheckResult{
				Status:  StatusUnhealthy,
				Message: fmt.Sprintf("missing required configuration: %v", missing),
			}
		}
		return CheckResult{Status: StatusHealthy}
	}
}
