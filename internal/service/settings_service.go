package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/crypto"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/repository"
)

const (
	settingsKey     = "app_settings"
	smtpPasswordKey = "smtp_password"
)

// SettingsService handles the user-tunable dashboard parameters.
// Settings are stored as one JSON document; the SMTP password is kept out of
// the document and stored fernet-encrypted under its own key.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	encryptor    *crypto.Encryptor
}

// NewSettingsService creates a new SettingsService.
// The encryptor may be nil when no fernet key is configured; in that case the
// SMTP password is neither stored nor returned.
func NewSettingsService(
	settingsRepo *repository.SettingsRepository,
	encryptor *crypto.Encryptor,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		encryptor:    encryptor,
	}
}

// GetSettings retrieves the current settings, falling back to defaults when
// nothing has been stored yet. The SMTP password is decrypted into the result
// for internal callers; the JSON tag keeps it out of API responses.
func (s *SettingsService) GetSettings() (model.Settings, error) {
	settings := model.DefaultSettings()

	raw, err := s.settingsRepo.Get(settingsKey)
	if err != nil && !errors.Is(err, apperrors.ErrSettingNotFound) {
		return model.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSettings, err)
	}
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return model.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSettings, err)
		}
	}

	if s.encryptor != nil {
		token, err := s.settingsRepo.Get(smtpPasswordKey)
		if err == nil {
			password, err := s.encryptor.Decrypt(token)
			if err != nil {
				return model.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSettings, err)
			}
			settings.SMTPPassword = password
		} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
			return model.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSettings, err)
		}
	}

	return settings, nil
}

// UpdateSettings replaces the stored settings.
// A non-empty SMTPPassword is encrypted and stored; an empty one leaves the
// stored password untouched so that callers can update other fields without
// re-supplying the secret.
func (s *SettingsService) UpdateSettings(settings model.Settings) error {
	if settings.Cash < 0 || settings.MonthlyDeposit < 0 || settings.TargetIncome < 0 {
		return fmt.Errorf("%w: settings amounts", apperrors.ErrNegativeAmount)
	}
	if settings.DividendDropPct < 0 {
		return fmt.Errorf("%w: dividend drop threshold", apperrors.ErrNegativeAmount)
	}

	// SMTPPassword carries `json:"-"` so the document never contains it.
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveSettings, err)
	}

	if err := s.settingsRepo.Set(settingsKey, string(doc)); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveSettings, err)
	}

	if settings.SMTPPassword != "" && s.encryptor != nil {
		token, err := s.encryptor.Encrypt(settings.SMTPPassword)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveSettings, err)
		}
		if err := s.settingsRepo.Set(smtpPasswordKey, token); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveSettings, err)
		}
	}

	return nil
}
