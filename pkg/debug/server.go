package debug

import (
	"net/http"
	"sync"
	"sync/atomic"

	_ "net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const listenAddr = ":6060"

// StartDebugServer runs the metrics and profiling sidecar. Prometheus
// metrics live on /metrics, pprof registers itself on the default mux
// through its import, and /healthz and /readyz act as probes. Storing true
// in the returned value flips the readiness probe.
func StartDebugServer(wg *sync.WaitGroup) (*http.Server, *atomic.Value) {
	ready := &atomic.Value{}
	ready.Store(false)

	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	http.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !ready.Load().(bool) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: listenAddr}
	go func() {
		defer wg.Done()

		log.Info().Str("addr", listenAddr).Msg("Debug sidecar listening")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Error on the debug sidecar server")
		}
	}()

	return srv, ready
}
