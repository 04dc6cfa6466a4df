package health

import (
	"fmt"
	"net/http"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"paper-dashboard/internal/httputil"
)

type Info struct {
	HTTPAddr    string
	Broker      string
	BrokerURL   string
	Paper       bool
	AuthEnabled bool
}

// SubscriberCounter reports live websocket subscriptions.
type SubscriberCounter interface {
	Subscribers() int
}

type Handler struct {
	info      Info
	subs      SubscriberCounter
	startedAt time.Time
	now       func() time.Time
}

func NewHandler(info Info, subs SubscriberCounter, startedAt time.Time) *Handler {
	start := startedAt.UTC()
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &Handler{info: info, subs: subs, startedAt: start, now: time.Now}
}

type healthResponse struct {
	Status    string       `json:"status"`
	Timestamp string       `json:"timestamp"`
	UptimeSec int64        `json:"uptime_sec"`
	Uptime    string       `json:"uptime"`
	App       appStats     `json:"app"`
	Runtime   runtimeStats `json:"runtime"`
	Build     buildStats   `json:"build"`
}

type appStats struct {
	HTTPAddr      string `json:"http_addr"`
	Broker        string `json:"broker"`
	BrokerURL     string `json:"broker_url,omitempty"`
	Paper         bool   `json:"paper"`
	AuthEnabled   bool   `json:"auth_enabled"`
	WSSubscribers int    `json:"ws_subscribers"`
}

type runtimeStats struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	GoMaxProcs int    `json:"gomaxprocs"`
}

type buildStats struct {
	MainPath string `json:"main_path"`
	Version  string `json:"version"`
}

func (h *Handler) uptime(now time.Time) time.Duration {
	uptime := now.Sub(h.startedAt)
	if uptime < 0 {
		return 0
	}
	return uptime
}

func (h *Handler) subscribers() int {
	if h.subs == nil {
		return 0
	}
	return h.subs.Subscribers()
}

// ServeHTTP reports liveness. The broker is not pinged: a failing broker
// shows up on the pages themselves.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	uptime := h.uptime(now)
	build := buildStats{}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		build.MainPath = strings.TrimSpace(info.Main.Path)
		build.Version = strings.TrimSpace(info.Main.Version)
	}
	httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: now.Format(time.RFC3339),
		UptimeSec: int64(uptime.Seconds()),
		Uptime:    uptime.String(),
		App: appStats{
			HTTPAddr:      h.info.HTTPAddr,
			Broker:        h.info.Broker,
			BrokerURL:     h.info.BrokerURL,
			Paper:         h.info.Paper,
			AuthEnabled:   h.info.AuthEnabled,
			WSSubscribers: h.subscribers(),
		},
		Runtime: runtimeStats{
			GoVersion:  runtime.Version(),
			Goroutines: runtime.NumGoroutine(),
			GoMaxProcs: runtime.GOMAXPROCS(0),
		},
		Build: build,
	})
}

// Metrics writes a few gauges in Prometheus text format.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	uptime := h.uptime(h.now().UTC())
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "# HELP dashboard_up Service process is running.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_up gauge\n")
	_, _ = fmt.Fprintf(w, "dashboard_up 1\n")

	_, _ = fmt.Fprintf(w, "# HELP dashboard_uptime_seconds Service uptime in seconds.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_uptime_seconds gauge\n")
	_, _ = fmt.Fprintf(w, "dashboard_uptime_seconds %d\n", int64(uptime.Seconds()))

	_, _ = fmt.Fprintf(w, "# HELP dashboard_ws_subscribers Open order feed websockets.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_ws_subscribers gauge\n")
	_, _ = fmt.Fprintf(w, "dashboard_ws_subscribers %d\n", h.subscribers())

	_, _ = fmt.Fprintf(w, "# HELP dashboard_go_goroutines Number of goroutines.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_go_goroutines gauge\n")
	_, _ = fmt.Fprintf(w, "dashboard_go_goroutines %d\n", runtime.NumGoroutine())

	_, _ = fmt.Fprintf(w, "# HELP dashboard_go_mem_alloc_bytes Bytes of allocated heap objects.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_go_mem_alloc_bytes gauge\n")
	_, _ = fmt.Fprintf(w, "dashboard_go_mem_alloc_bytes %d\n", mem.Alloc)

	_, _ = fmt.Fprintf(w, "# HELP dashboard_go_mem_sys_bytes Bytes of memory obtained from the OS.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_go_mem_sys_bytes gauge\n")
	_, _ = fmt.Fprintf(w, "dashboard_go_mem_sys_bytes %d\n", mem.Sys)

	_, _ = fmt.Fprintf(w, "# HELP dashboard_go_gc_count Completed GC cycles.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dashboard_go_gc_count counter\n")
	_, _ = fmt.Fprintf(w, "dashboard_go_gc_count %d\n", mem.NumGC)
}
