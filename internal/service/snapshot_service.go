package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/validation"
)

// SnapshotService handles saved copies of portfolio metric computations.
type SnapshotService struct {
	snapshotRepo     *repository.SnapshotRepository
	portfolioService *PortfolioService
}

// NewSnapshotService creates a new SnapshotService with the provided
// dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	portfolioService *PortfolioService,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:     snapshotRepo,
		portfolioService: portfolioService,
	}
}

// TakeSnapshot computes the current metrics and stores them under a fresh ID.
func (s *SnapshotService) TakeSnapshot(ctx context.Context) (model.Snapshot, error) {
	metrics, err := s.portfolioService.ComputeMetrics(ctx)
	if err != nil {
		return model.Snapshot{}, err
	}

	payload, err := json.Marshal(metrics)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveSnapshot, err)
	}

	snapshot := model.Snapshot{
		ID:      uuid.New().String(),
		TakenAt: time.Now().UTC(),
		Payload: payload,
	}

	if err := s.snapshotRepo.Save(snapshot); err != nil {
		return model.Snapshot{}, err
	}

	return snapshot, nil
}

// ListSnapshots retrieves all snapshots, newest first, without payloads.
func (s *SnapshotService) ListSnapshots() ([]model.Snapshot, error) {
	return s.snapshotRepo.ListSnapshots()
}

// GetSnapshot retrieves one snapshot including its payload.
func (s *SnapshotService) GetSnapshot(id string) (model.Snapshot, error) {
	if err := validation.ValidateUUID(id); err != nil {
		return model.Snapshot{}, err
	}
	return s.snapshotRepo.GetSnapshot(id)
}

// DeleteSnapshot removes a snapshot.
func (s *SnapshotService) DeleteSnapshot(id string) error {
	if err := validation.ValidateUUID(id); err != nil {
		return err
	}
	return s.snapshotRepo.DeleteSnapshot(id)
}
