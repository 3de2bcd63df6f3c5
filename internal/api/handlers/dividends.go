package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/income-strategy/engine/internal/api/request"
	"github.com/income-strategy/engine/internal/api/response"
	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/service"
)

// DividendHandler handles HTTP requests for dividend history endpoints.
type DividendHandler struct {
	dividendService *service.DividendService
}

// NewDividendHandler creates a new DividendHandler with the provided service dependency.
func NewDividendHandler(dividendService *service.DividendService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
	}
}

// History handles GET requests to retrieve a ticker's dividend history in
// chronological order.
//
// Endpoint: GET /api/dividends/{ticker}
// Response: 200 OK with array of DividendRecord
// Error: 400 Bad Request if the ticker is unknown (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *DividendHandler) History(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	records, err := h.dividendService.GetHistory(ticker)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveDividends.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, records)
}

// Create handles POST requests to append a weekly dividend observation.
// Records must arrive in time order per ticker.
//
// Endpoint: POST /api/dividends/{ticker}
// Request Body: CreateDividendRequest
// Response: 201 Created with the stored DividendRecord
// Error: 400 Bad Request if the body is invalid or the record is out of order
// Error: 500 Internal Server Error if the append fails
func (h *DividendHandler) Create(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	req, err := parseJSON[request.CreateDividendRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	record, err := h.dividendService.RecordDividend(model.DividendRecord{
		Ticker:   ticker,
		Date:     date,
		Dividend: req.Dividend,
		Verified: req.Verified,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrHistoryOutOfOrder),
			errors.Is(err, apperrors.ErrNegativeAmount),
			errors.Is(err, apperrors.ErrTickerNotTracked):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecordDividend.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, record)
}

// Verify handles PUT requests to flag a stored observation as checked against
// the fund's published distribution.
//
// Endpoint: PUT /api/dividends/record/{uuid}/verify
// Request Body: VerifyDividendRequest
// Response: 204 No Content
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if the update fails
func (h *DividendHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.VerifyDividendRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.dividendService.VerifyRecord(id, req.Verified); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecordDividend.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
