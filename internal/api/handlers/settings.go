package handlers

import (
	"errors"
	"net/http"

	"github.com/income-strategy/engine/internal/api/request"
	"github.com/income-strategy/engine/internal/api/response"
	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/service"
)

// SettingsHandler handles HTTP requests for the settings endpoints.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Settings handles GET requests to retrieve the current settings.
// The SMTP password is never included in the response.
//
// Endpoint: GET /api/settings
// Response: 200 OK with Settings
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) Settings(w http.ResponseWriter, _ *http.Request) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// Update handles PUT requests to replace the stored settings.
// An empty smtpPassword keeps the stored secret.
//
// Endpoint: PUT /api/settings
// Request Body: UpdateSettingsRequest
// Response: 200 OK with the stored Settings (password omitted)
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the save fails
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settings := model.Settings{
		Cash:                req.Cash,
		MonthlyDeposit:      req.MonthlyDeposit,
		TargetIncome:        req.TargetIncome,
		DividendDropPct:     req.DividendDropPct,
		NotifyEmail:         req.NotifyEmail,
		NotifySMS:           req.NotifySMS,
		EmailEnabled:        req.EmailEnabled,
		SMSEnabled:          req.SMSEnabled,
		SMTPHost:            req.SMTPHost,
		SMTPPort:            req.SMTPPort,
		SMTPSender:          req.SMTPSender,
		SMTPPassword:        req.SMTPPassword,
		AlertOnDividendDrop: req.AlertOnDividendDrop,
		AlertOnPriceDrop:    req.AlertOnPriceDrop,
	}

	if err := h.settingsService.UpdateSettings(settings); err != nil {
		if errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}
