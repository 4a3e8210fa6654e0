package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kou-isk/youcoder/pkg/metrics"
)

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with request count and duration metrics.
func instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		metrics.RecordHTTPRequest(endpoint, strconv.Itoa(rec.status))
		metrics.RecordHTTPDuration(endpoint, time.Since(start).Seconds())
	}
}
