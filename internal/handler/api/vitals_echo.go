package api

import (
	"VitalSim/internal/domain/models"
	domrepo "VitalSim/internal/domain/repository"
	xhttp "VitalSim/pkg/http"
	xlogger "VitalSim/pkg/logger"

	"github.com/labstack/echo/v4"
)

// VitalsEchoHandler serves read-only views over the latest engine snapshot.
// It never touches the engine directly: everything goes through the snapshot
// source, so renders cannot interleave with a tick.
type VitalsEchoHandler struct {
	logger *xlogger.Logger
	src    domrepo.SnapshotSource
	live   echo.HandlerFunc
}

func NewVitalsEchoHandler(logger *xlogger.Logger, src domrepo.SnapshotSource) *VitalsEchoHandler {
	return &VitalsEchoHandler{logger: logger, src: src}
}

// SetLiveHandler mounts a streaming handler (WebSocket hub) under /ws/live.
func (h *VitalsEchoHandler) SetLiveHandler(fn echo.HandlerFunc) { h.live = fn }

func (h *VitalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/snapshot", h.Snapshot)
	g.GET("/signals", h.Signals)
	g.GET("/signals/:name/history", h.History)
	g.GET("/correlation", h.Correlation)
	g.GET("/risk", h.Risk)
	g.GET("/anomalies", h.Anomalies)
	e.GET("/healthz", h.Health)
	if h.live != nil {
		e.GET("/ws/live", h.live)
	}
}

func (h *VitalsEchoHandler) Snapshot(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.src.Latest())
}

func (h *VitalsEchoHandler) Signals(c echo.Context) error {
	snap := h.src.Latest()
	// Strip the heavy history payload for the lightweight listing.
	out := make([]models.Signal, len(snap.Signals))
	for i, s := range snap.Signals {
		s.History = nil
		s.Trend = nil
		out[i] = s
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *VitalsEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap := h.src.Latest()
	s := snap.SignalByName(req.Name)
	if s == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown signal '%s'", req.Name))
	}

	series := s.History
	if req.Kind == "trend" {
		series = s.Trend
	}
	if len(series) > req.N {
		series = series[len(series)-req.N:]
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"name":   s.Name,
		"unit":   s.Unit,
		"kind":   req.Kind,
		"values": series,
	})
}

func (h *VitalsEchoHandler) Correlation(c echo.Context) error {
	req := &models.CorrelationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap := h.src.Latest()
	if req.A == "" {
		return xhttp.SuccessResponse(c, snap.Correlations)
	}
	if _, ok := snap.Correlations[req.A]; !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown signal '%s'", req.A))
	}
	if _, ok := snap.Correlations[req.B]; !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown signal '%s'", req.B))
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"a":           req.A,
		"b":           req.B,
		"coefficient": snap.Correlations.At(req.A, req.B),
	})
}

func (h *VitalsEchoHandler) Risk(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.src.Latest().Risk)
}

func (h *VitalsEchoHandler) Anomalies(c echo.Context) error {
	req := &models.AnomalyListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap := h.src.Latest()
	events := make([]models.AnomalyEvent, 0, len(snap.Events))
	for _, e := range snap.Events {
		if req.Severity != "" && string(e.Severity) != req.Severity {
			continue
		}
		if req.Status != "" && string(e.Status) != req.Status {
			continue
		}
		events = append(events, e)
		if len(events) == req.Limit {
			break
		}
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"events": events,
		"stats":  snap.Stats,
		"state":  snap.Anomaly,
	})
}

func (h *VitalsEchoHandler) Health(c echo.Context) error {
	snap := h.src.Latest()
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status": "ok",
		"tick":   snap.Tick,
	})
}
