package service

import (
	"github.com/google/uuid"

	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/validation"
)

// DividendService handles dividend history business logic.
type DividendService struct {
	dividendRepo *repository.DividendRepository
}

// NewDividendService creates a new DividendService with the provided
// repository dependencies.
func NewDividendService(
	dividendRepo *repository.DividendRepository,
) *DividendService {
	return &DividendService{
		dividendRepo: dividendRepo,
	}
}

// GetHistory retrieves the dividend history for one ticker in chronological
// order.
func (s *DividendService) GetHistory(ticker string) ([]model.DividendRecord, error) {
	if err := validation.ValidateTicker(ticker); err != nil {
		return nil, err
	}
	return s.dividendRepo.GetHistory(ticker)
}

// GetAllHistory retrieves dividend history for every ticker, keyed by ticker.
func (s *DividendService) GetAllHistory() (map[string][]model.DividendRecord, error) {
	return s.dividendRepo.GetAllHistory()
}

// RecordDividend validates and appends a dividend observation.
// A missing ID is generated. Records must arrive in time order per ticker;
// out-of-order appends return ErrHistoryOutOfOrder.
func (s *DividendService) RecordDividend(record model.DividendRecord) (model.DividendRecord, error) {
	if err := validation.ValidateDividendRecord(record); err != nil {
		return model.DividendRecord{}, err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	} else if err := validation.ValidateUUID(record.ID); err != nil {
		return model.DividendRecord{}, err
	}

	if err := s.dividendRepo.AddRecord(record); err != nil {
		return model.DividendRecord{}, err
	}

	return record, nil
}

// VerifyRecord marks a dividend observation as checked against the fund's
// published distribution.
func (s *DividendService) VerifyRecord(id string, verified bool) error {
	if err := validation.ValidateUUID(id); err != nil {
		return err
	}
	return s.dividendRepo.SetVerified(id, verified)
}
