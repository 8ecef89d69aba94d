package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// maxRPCPeek bounds how much of a POST body is inspected for labels.
const maxRPCPeek = 64 << 10

var (
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notify_http_request_duration_seconds",
		Help:    "Duration of HTTP requests by JSON-RPC method and tool.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "rpc_method", "tool"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_http_requests_total",
		Help: "HTTP requests by route, JSON-RPC method, tool and status.",
	}, []string{"path", "http_method", "rpc_method", "tool", "status"})
)

type rpcEnvelope struct {
	Method string `json:"method"`
	Params struct {
		Name string `json:"name"`
	} `json:"params"`
}

// rpcLabels names the JSON-RPC method and, for tools/call, the tool. Batches
// and bodies that are not JSON-RPC get placeholder values.
func rpcLabels(body []byte) (method, tool string) {
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
		return "none", ""
	case trimmed[0] == '[':
		return "batch", ""
	}
	var env rpcEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Method == "" {
		return "invalid", ""
	}
	if env.Method == "tools/call" {
		return env.Method, env.Params.Name
	}
	return env.Method, ""
}

// MetricsMiddleware records request count and latency per route. POST bodies
// are peeked for the JSON-RPC method and tool name and then replayed to next.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rpcMethod, tool := "none", ""
		if r.Method == http.MethodPost && r.Body != nil {
			peek, err := io.ReadAll(io.LimitReader(r.Body, maxRPCPeek))
			if err == nil {
				rpcMethod, tool = rpcLabels(peek)
			}
			r.Body = readCloser{io.MultiReader(bytes.NewReader(peek), r.Body), r.Body}
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		routeCtx := chi.RouteContext(r.Context())
		path := r.URL.Path
		if routeCtx != nil && routeCtx.RoutePattern() != "" {
			path = routeCtx.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}

		httpDuration.WithLabelValues(path, rpcMethod, tool).Observe(time.Since(start).Seconds())
		httpRequests.WithLabelValues(path, r.Method, rpcMethod, tool, strconv.Itoa(code)).Inc()
	})
}

type readCloser struct {
	io.Reader
	io.Closer
}
