package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/income-strategy/engine/internal/api/response"
	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/service"
)

// AdvisorHandler handles HTTP requests for the analytics endpoints.
// Every computation lives in the advisor service and the engine; the handler
// only adapts transport.
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler with the provided service dependency.
func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
	}
}

// Weekly handles GET requests for the ranked weekly buy recommendation.
//
// Endpoint: GET /api/advisor/weekly
// Response: 200 OK with engine.WeeklyRecommendation
// Error: 409 Conflict if the portfolio configuration is invalid
// Error: 500 Internal Server Error if the analysis fails
func (h *AdvisorHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	weekly, err := h.advisorService.WeeklyBuy(r.Context())
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, weekly)
}

// Rebalance handles GET requests for the rebalancing plan.
//
// Endpoint: GET /api/advisor/rebalance
// Response: 200 OK with engine.RebalancePlan
func (h *AdvisorHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	plan, err := h.advisorService.Rebalance(r.Context())
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, plan)
}

// Risk handles GET requests for the portfolio risk assessment.
//
// Endpoint: GET /api/advisor/risk
// Response: 200 OK with engine.RiskScore
func (h *AdvisorHandler) Risk(w http.ResponseWriter, r *http.Request) {
	risk, err := h.advisorService.Risk(r.Context())
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, risk)
}

// Recommendations handles GET requests for the merged, prioritized action
// list.
//
// Endpoint: GET /api/advisor/recommendations
// Response: 200 OK with array of engine.Recommendation
func (h *AdvisorHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.advisorService.Recommendations(r.Context())
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, recs)
}

// Projection handles GET requests for the income growth projection.
// Optional query parameters deposit and target override the stored settings
// for what-if exploration.
//
// Endpoint: GET /api/advisor/projection?deposit=250&target=1500
// Response: 200 OK with engine.Projection
// Error: 400 Bad Request if an override is not a number
func (h *AdvisorHandler) Projection(w http.ResponseWriter, r *http.Request) {
	deposit, err := parseFloatParam(r, "deposit")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid deposit parameter", err.Error())
		return
	}
	target, err := parseFloatParam(r, "target")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid target parameter", err.Error())
		return
	}

	projection, err := h.advisorService.Projection(r.Context(), deposit, target)
	if err != nil {
		respondAdvisorError(w, err)
		return
	}
	response.RespondJSON(w, http.StatusOK, projection)
}

// News handles GET requests for the weighted headline feed and its per-ticker
// sentiment scores.
//
// Endpoint: GET /api/advisor/news
// Response: 200 OK with NewsResponse
func (h *AdvisorHandler) News(w http.ResponseWriter, r *http.Request) {
	headlines, sentiment := h.advisorService.News(r.Context())

	response.RespondJSON(w, http.StatusOK, map[string]any{
		"headlines": headlines,
		"sentiment": sentiment,
	})
}

// respondAdvisorError maps service errors onto HTTP statuses: the invalid
// portfolio gate is a 409, everything else a 500.
func respondAdvisorError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperrors.ErrPortfolioInvalid) {
		response.RespondError(w, http.StatusConflict, apperrors.ErrPortfolioInvalid.Error(), err.Error())
		return
	}
	response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAdvice.Error(), err.Error())
}

// parseFloatParam reads an optional float query parameter, nil when absent.
func parseFloatParam(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
