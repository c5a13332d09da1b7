package monitoring

import (
	"fmt"
	"net/http"
)

// HealthHandler reports 200 while the last run succeeded and 503 otherwise.
func HealthHandler(monitor *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if monitor.IsHealthy() {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "OK - %s", monitor.GetStatusSummary())
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, "Service unhealthy - %s", monitor.GetStatusSummary())
		}
	}
}

func StatusHandler(monitor *Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "%s", monitor.GetStatusSummary())
	}
}
