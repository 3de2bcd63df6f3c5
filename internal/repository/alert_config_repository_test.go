package repository_test

import (
	"errors"
	"testing"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/model"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/testutil"
)

// TestAlertConfigRepository_GetConfigs tests retrieval of all configurations.
//
// WHY: The target price is nullable; scanning must map a NULL column onto a
// nil pointer, not a zero value, or an unset target would read as $0 and fire
// on every evaluation.
func TestAlertConfigRepository_GetConfigs(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	repo := repository.NewAlertConfigRepository(db)
	target := 22.50
	testutil.InsertAlertConfig(t, db, model.PriceAlertConfig{Ticker: "CHPY", StopLossPct: 20, Enabled: false})
	testutil.InsertAlertConfig(t, db, model.PriceAlertConfig{Ticker: "QDTE", StopLossPct: 15, TargetPrice: &target, Enabled: true})

	// Execute
	configs, err := repo.GetConfigs()

	// Assert
	if err != nil {
		t.Fatalf("GetConfigs() returned unexpected error: %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d", len(configs))
	}

	// Ticker order: CHPY before QDTE.
	if configs[0].Ticker != "CHPY" || configs[1].Ticker != "QDTE" {
		t.Errorf("Order = %s, %s; want CHPY, QDTE", configs[0].Ticker, configs[1].Ticker)
	}
	if configs[0].TargetPrice != nil {
		t.Errorf("CHPY target = %v, want nil", *configs[0].TargetPrice)
	}
	if configs[1].TargetPrice == nil || *configs[1].TargetPrice != 22.50 {
		t.Errorf("QDTE target = %v, want 22.50", configs[1].TargetPrice)
	}
	if !configs[1].Enabled || configs[0].Enabled {
		t.Error("Enabled flags not preserved")
	}
}

// TestAlertConfigRepository_GetConfig tests single-ticker lookup.
func TestAlertConfigRepository_GetConfig(t *testing.T) {
	t.Run("returns the stored config", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewAlertConfigRepository(db)
		testutil.InsertAlertConfig(t, db, model.PriceAlertConfig{Ticker: "XDTE", StopLossPct: 25, Enabled: true})

		// Execute
		cfg, err := repo.GetConfig("XDTE")

		// Assert
		if err != nil {
			t.Fatalf("GetConfig() returned unexpected error: %v", err)
		}
		if cfg.StopLossPct != 25 || !cfg.Enabled {
			t.Errorf("Got %+v", cfg)
		}
	})

	t.Run("returns ErrAlertConfigNotFound for a missing row", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo := repository.NewAlertConfigRepository(db)

		// Execute
		_, err := repo.GetConfig("QDTE")

		// Assert
		if !errors.Is(err, apperrors.ErrAlertConfigNotFound) {
			t.Errorf("Expected ErrAlertConfigNotFound, got %v", err)
		}
	})
}

// TestAlertConfigRepository_UpsertConfig tests insert-or-replace semantics.
func TestAlertConfigRepository_UpsertConfig(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	repo := repository.NewAlertConfigRepository(db)
	target := 28.0

	// Execute: insert, then replace with a different config.
	if err := repo.UpsertConfig(model.PriceAlertConfig{Ticker: "CHPY", StopLossPct: 20, Enabled: false}); err != nil {
		t.Fatalf("UpsertConfig() insert failed: %v", err)
	}
	if err := repo.UpsertConfig(model.PriceAlertConfig{Ticker: "CHPY", StopLossPct: 30, TargetPrice: &target, Enabled: true}); err != nil {
		t.Fatalf("UpsertConfig() update failed: %v", err)
	}

	// Assert
	cfg, err := repo.GetConfig("CHPY")
	if err != nil {
		t.Fatalf("GetConfig() returned unexpected error: %v", err)
	}
	if cfg.StopLossPct != 30 || !cfg.Enabled {
		t.Errorf("Got %+v after upsert", cfg)
	}
	if cfg.TargetPrice == nil || *cfg.TargetPrice != 28.0 {
		t.Errorf("Target = %v, want 28.0", cfg.TargetPrice)
	}

	// Clearing the target stores NULL again.
	if err := repo.UpsertConfig(model.PriceAlertConfig{Ticker: "CHPY", StopLossPct: 30, Enabled: true}); err != nil {
		t.Fatalf("UpsertConfig() clear failed: %v", err)
	}
	cfg, err = repo.GetConfig("CHPY")
	if err != nil {
		t.Fatalf("GetConfig() returned unexpected error: %v", err)
	}
	if cfg.TargetPrice != nil {
		t.Errorf("Target = %v after clearing, want nil", *cfg.TargetPrice)
	}
}
