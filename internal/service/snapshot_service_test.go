package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/income-strategy/engine/internal/apperrors"
	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/testutil"
)

// TestSnapshotService_TakeSnapshot tests capturing the live metrics.
//
// WHY: A snapshot is the JSON-encoded metrics computation at a point in time;
// it must round trip through storage into the exact metrics structure.
func TestSnapshotService_TakeSnapshot(t *testing.T) {
	t.Run("stores the current metrics", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewFakeGateway())
		testutil.SeedHoldings(t, db)

		// Execute
		snapshot, err := svc.TakeSnapshot(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("TakeSnapshot() returned unexpected error: %v", err)
		}
		if snapshot.ID == "" || snapshot.TakenAt.IsZero() {
			t.Errorf("Incomplete snapshot: %+v", snapshot)
		}

		var metrics engine.MetricsSnapshot
		if err := json.Unmarshal(snapshot.Payload, &metrics); err != nil {
			t.Fatalf("Payload is not a metrics document: %v", err)
		}
		if len(metrics.Holdings) != 3 {
			t.Errorf("Payload holds %d holdings, want 3", len(metrics.Holdings))
		}
		if metrics.TotalValue <= 0 {
			t.Errorf("TotalValue = %v, want positive", metrics.TotalValue)
		}
	})

	t.Run("invalid portfolio is gated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewFakeGateway())
		testutil.NewHolding("QDTE").WithShares(-1).Build(t, db)

		_, err := svc.TakeSnapshot(context.Background())

		if !errors.Is(err, apperrors.ErrPortfolioInvalid) {
			t.Errorf("Expected ErrPortfolioInvalid, got %v", err)
		}
	})
}

// TestSnapshotService_Lifecycle tests list, get and delete around a capture.
func TestSnapshotService_Lifecycle(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db, testutil.NewFakeGateway())
	testutil.SeedHoldings(t, db)

	taken, err := svc.TakeSnapshot(context.Background())
	if err != nil {
		t.Fatalf("TakeSnapshot() returned unexpected error: %v", err)
	}

	// Execute + Assert: list shows it without payload.
	listed, err := svc.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != taken.ID {
		t.Fatalf("Listing = %+v, want the captured snapshot", listed)
	}
	if len(listed[0].Payload) != 0 {
		t.Error("Listing should omit payloads")
	}

	// Get returns the payload.
	got, err := svc.GetSnapshot(taken.ID)
	if err != nil {
		t.Fatalf("GetSnapshot() returned unexpected error: %v", err)
	}
	if string(got.Payload) != string(taken.Payload) {
		t.Error("Payload changed through storage")
	}

	// Delete removes it.
	if err := svc.DeleteSnapshot(taken.ID); err != nil {
		t.Fatalf("DeleteSnapshot() returned unexpected error: %v", err)
	}
	if _, err := svc.GetSnapshot(taken.ID); !errors.Is(err, apperrors.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound after delete, got %v", err)
	}
}

// TestSnapshotService_IDValidation tests that malformed IDs are rejected
// before touching storage.
func TestSnapshotService_IDValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db, testutil.NewFakeGateway())

	if _, err := svc.GetSnapshot("bogus"); !errors.Is(err, apperrors.ErrInvalidUUID) {
		t.Errorf("GetSnapshot: expected ErrInvalidUUID, got %v", err)
	}
	if err := svc.DeleteSnapshot("bogus"); !errors.Is(err, apperrors.ErrInvalidUUID) {
		t.Errorf("DeleteSnapshot: expected ErrInvalidUUID, got %v", err)
	}
}
