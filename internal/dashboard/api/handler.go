package api

import (
	"net/http"
	"strings"
	"time"

	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"
	"marketdash/internal/dashboard/settings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Dashboard is what the handlers read from. *app.Dashboard satisfies it.
type Dashboard interface {
	State() *memorystore.State
	Alerts(threshold float64) []memorystore.AlertGroup
	History(f registry.Family, code string) []memorystore.HistoricalPoint
	Warnings() []string
	TriggerRefresh() bool
}

type FamilyRequest struct {
	Family string `param:"family" validate:"required"`
}

type HistoryRequest struct {
	Family string `param:"family" validate:"required"`
	Code   string `query:"code"`
}

type AlertsRequest struct {
	// 0 means the current setting
	Threshold float64 `query:"threshold" validate:"omitempty,gte=1,lte=10"`
}

// Handler serves the dashboard read API plus settings and manual refresh.
type Handler struct {
	dash     Dashboard
	registry *registry.Registry
	settings *settings.Store
	stream   http.Handler
	metrics  http.Handler
	logger   *zap.Logger
}

// NewHandler wires the routes' dependencies. stream and metrics may be nil, in which case
// /ws and /metrics are not registered.
func NewHandler(dash Dashboard, reg *registry.Registry, st *settings.Store, stream, metrics http.Handler,
	logger *zap.Logger) *Handler {
	return &Handler{dash: dash, registry: reg, settings: st, stream: stream, metrics: metrics, logger: logger}
}

// familyParam resolves the :family path segment.
func familyParam(name string) (registry.Family, []ValidationError) {
	f, err := registry.ParseFamily(name)
	if err != nil {
		return "", []ValidationError{{
			Code:    "ERR_ONEOF",
			Field:   "Family",
			Message: err.Error(),
			Params:  map[string]any{"options": registry.Families},
		}}
	}
	return f, nil
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.health)
	if h.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(h.metrics))
	}
	if h.stream != nil {
		e.GET("/ws", echo.WrapHandler(h.stream))
	}

	g := e.Group("/api")
	g.GET("/instruments/:family", h.instruments)
	g.GET("/state", h.state)
	g.GET("/snapshots/:family", h.snapshot)
	g.GET("/summary", h.summary)
	g.GET("/history/:family", h.history)
	g.GET("/macro", h.macro)
	g.GET("/alerts", h.alerts)
	g.GET("/warnings", h.warnings)
	g.GET("/settings", h.getSettings)
	g.PUT("/settings", h.putSettings)
	g.POST("/refresh", h.refresh)
	g.GET("/export.xlsx", h.export)
}

func (h *Handler) health(c echo.Context) error {
	resp := map[string]any{"status": "ok"}
	if st := h.dash.State(); st != nil {
		resp["last_refresh"] = st.RefreshedAt
		resp["cycle_id"] = st.CycleID
	}
	return SuccessResponse(c, resp)
}

func (h *Handler) instruments(c echo.Context) error {
	var req FamilyRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	family, errs := familyParam(req.Family)
	if errs != nil {
		return BadRequestResponse(c, errs)
	}
	return SuccessResponse(c, h.registry.Instruments(family))
}

func (h *Handler) state(c echo.Context) error {
	st := h.dash.State()
	if st == nil {
		return DataResponse(c, http.StatusServiceUnavailable, "no refresh has completed yet")
	}
	return SuccessResponse(c, st)
}

func (h *Handler) snapshot(c echo.Context) error {
	var req FamilyRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	family, errs := familyParam(req.Family)
	if errs != nil {
		return BadRequestResponse(c, errs)
	}
	return SuccessResponse(c, h.dash.State().Table(family))
}

func (h *Handler) summary(c echo.Context) error {
	st := h.dash.State()
	out := make(map[registry.Family]memorystore.Summary, len(registry.Families))
	for _, f := range registry.Families {
		out[f] = st.Table(f).Summary
	}
	return SuccessResponse(c, out)
}

func (h *Handler) history(c echo.Context) error {
	var req HistoryRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	family, errs := familyParam(req.Family)
	if errs != nil {
		return BadRequestResponse(c, errs)
	}
	code := strings.ToUpper(req.Code)

	if code != "" {
		if _, ok := h.registry.Lookup(family, code); !ok {
			return NotFoundResponse(c, []ValidationError{{
				Code:    "ERR_NOT_FOUND",
				Field:   "code",
				Message: "unknown instrument " + code,
			}})
		}
	}

	points := h.dash.History(family, code)
	if points == nil {
		points = []memorystore.HistoricalPoint{}
	}
	return SuccessResponse(c, points)
}

func (h *Handler) macro(c echo.Context) error {
	st := h.dash.State()
	if st == nil {
		return DataResponse(c, http.StatusServiceUnavailable, "no refresh has completed yet")
	}
	return SuccessResponse(c, map[string]any{
		"macro":     st.Macro,
		"simulated": st.Simulated,
	})
}

func (h *Handler) alerts(c echo.Context) error {
	var req AlertsRequest
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	return SuccessResponse(c, h.dash.Alerts(req.Threshold))
}

func (h *Handler) warnings(c echo.Context) error {
	st := h.dash.State()
	omitted := make(map[registry.Family][]string, len(registry.Families))
	for _, f := range registry.Families {
		omitted[f] = append([]string{}, st.Table(f).Omitted...)
	}
	return SuccessResponse(c, map[string]any{
		"history": h.dash.Warnings(),
		"omitted": omitted,
	})
}

func (h *Handler) getSettings(c echo.Context) error {
	return SuccessResponse(c, h.settings.Get())
}

func (h *Handler) putSettings(c echo.Context) error {
	var req settings.Update
	if errs := ReadAndValidateRequest(c, &req); errs != nil {
		return BadRequestResponse(c, errs)
	}
	next, err := h.settings.Apply(req)
	if err != nil {
		return BadRequestResponse(c, validationErrors(err))
	}
	return SuccessResponse(c, next)
}

func (h *Handler) refresh(c echo.Context) error {
	if !h.dash.TriggerRefresh() {
		return ConflictResponse(c, "a refresh is already pending")
	}
	return AcceptedResponse(c, map[string]any{"requested_at": time.Now().UTC()})
}

func (h *Handler) export(c echo.Context) error {
	st := h.dash.State()
	if st == nil {
		return DataResponse(c, http.StatusServiceUnavailable, "no refresh has completed yet")
	}

	wb, err := BuildWorkbook(st)
	if err != nil {
		h.logger.Error("failed to build workbook", zap.Error(err))
		return InternalServerErrorResponse(c)
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		h.logger.Error("failed to write workbook", zap.Error(err))
		return InternalServerErrorResponse(c)
	}

	name := "marketdash-" + st.RefreshedAt.UTC().Format("20060102-150405") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
