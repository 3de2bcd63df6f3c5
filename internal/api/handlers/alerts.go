package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/income-strategy/engine/internal/api/request"
	"github.com/income-strategy/engine/internal/api/response"
	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/service"
)

// AlertHandler handles HTTP requests for alert endpoints.
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler with the provided service dependency.
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// Alerts handles GET requests to evaluate the current alert set.
// Alerts are transient: each request regenerates them from live data.
//
// Endpoint: GET /api/alerts
// Response: 200 OK with array of engine.Alert
// Error: 409 Conflict if the portfolio configuration is invalid
// Error: 500 Internal Server Error if evaluation fails
func (h *AlertHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alertService.EvaluateAlerts(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioInvalid) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrPortfolioInvalid.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAlerts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, alerts)
}

// Configs handles GET requests to retrieve all price alert configurations.
//
// Endpoint: GET /api/alerts/config
// Response: 200 OK with array of PriceAlertConfig
func (h *AlertHandler) Configs(w http.ResponseWriter, _ *http.Request) {
	configs, err := h.alertService.GetConfigs()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAlerts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, configs)
}

// Config handles GET requests to retrieve one ticker's alert configuration.
//
// Endpoint: GET /api/alerts/config/{ticker}
// Response: 200 OK with PriceAlertConfig
// Error: 404 Not Found if the ticker has no configuration row
func (h *AlertHandler) Config(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	cfg, err := h.alertService.GetConfig(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlertConfigNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAlertConfigNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAlerts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

// UpdateConfig handles PUT requests to set a ticker's alert thresholds.
//
// Endpoint: PUT /api/alerts/config/{ticker}
// Request Body: UpdateAlertConfigRequest
// Response: 200 OK with the stored PriceAlertConfig
// Error: 400 Bad Request if the body fails validation
// Error: 500 Internal Server Error if the save fails
func (h *AlertHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.UpdateAlertConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cfg := model.PriceAlertConfig{
		Ticker:      ticker,
		StopLossPct: req.StopLossPct,
		TargetPrice: req.TargetPrice,
		Enabled:     req.Enabled,
	}

	if err := h.alertService.UpdateConfig(cfg); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStopLossOutOfRange),
			errors.Is(err, apperrors.ErrNegativeAmount),
			errors.Is(err, apperrors.ErrTickerNotTracked):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveAlertConfig.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}
