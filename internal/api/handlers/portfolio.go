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

// PortfolioHandler handles HTTP requests for portfolio endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioResponse pairs the stored holdings with the static fund reference
// data the dashboard renders alongside them.
type PortfolioResponse struct {
	Holdings []model.Holding             `json:"holdings"`
	Info     map[string]model.TickerInfo `json:"info"`
}

// Portfolio handles GET requests to retrieve the stored holdings.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, _ *http.Request) {
	holdings, err := h.portfolioService.GetHoldings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PortfolioResponse{
		Holdings: holdings,
		Info:     h.portfolioService.GetTickerInfo(),
	})
}

// Metrics handles GET requests to compute the live portfolio metrics.
//
// Endpoint: GET /api/portfolio/metrics
// Response: 200 OK with engine.MetricsSnapshot
// Error: 409 Conflict if the portfolio configuration is invalid
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.portfolioService.ComputeMetrics(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioInvalid) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrPortfolioInvalid.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeMetrics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, metrics)
}

// UpdateHolding handles PUT requests to edit one position.
//
// Endpoint: PUT /api/portfolio/{ticker}
// Request Body: UpdateHoldingRequest
// Response: 200 OK with the stored Holding
// Error: 400 Bad Request if the body or resulting position is invalid
// Error: 404 Not Found if the ticker has no holding row
// Error: 500 Internal Server Error if the update fails
func (h *PortfolioHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.UpdateHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding := model.Holding{
		Ticker:            ticker,
		Shares:            req.Shares,
		WeeklyDividend:    req.WeeklyDividend,
		CostBasisPerShare: req.CostBasisPerShare,
	}

	if err := h.portfolioService.UpdateHolding(holding); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrHoldingNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrPortfolioInvalid), errors.Is(err, apperrors.ErrTickerNotTracked):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveHolding.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}
