package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/income-strategy/engine/internal/crypto"
	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/notify"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/service"
)

// testFetchTimeout bounds fake-gateway batch fetches; generous because the
// fake never blocks.
const testFetchTimeout = 5 * time.Second

// MakeID generates a unique ID for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeFernetKey generates a fresh fernet key for credential encryption tests.
func MakeFernetKey(t *testing.T) string {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

// NewTestEncryptor creates an Encryptor with a fresh key.
func NewTestEncryptor(t *testing.T) *crypto.Encryptor {
	t.Helper()

	enc, err := crypto.NewEncryptor(MakeFernetKey(t))
	if err != nil {
		t.Fatalf("Failed to create test encryptor: %v", err)
	}
	return enc
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	settingsRepo := repository.NewSettingsRepository(db)

	return service.NewSettingsService(settingsRepo, nil)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB, gateway *FakeGateway) *service.PortfolioService {
	t.Helper()

	holdingRepo := repository.NewHoldingRepository(db)

	return service.NewPortfolioService(
		holdingRepo,
		NewTestSettingsService(t, db),
		gateway,
		engine.Default(),
		testFetchTimeout,
	)
}

func NewTestDividendService(t *testing.T, db *sql.DB) *service.DividendService {
	t.Helper()

	dividendRepo := repository.NewDividendRepository(db)

	return service.NewDividendService(dividendRepo)
}

func NewTestAlertService(t *testing.T, db *sql.DB, gateway *FakeGateway) *service.AlertService {
	t.Helper()

	alertConfigRepo := repository.NewAlertConfigRepository(db)

	return service.NewAlertService(
		NewTestPortfolioService(t, db, gateway),
		NewTestDividendService(t, db),
		NewTestSettingsService(t, db),
		alertConfigRepo,
		notify.LogNotifier{},
		engine.Default(),
	)
}

func NewTestAdvisorService(t *testing.T, db *sql.DB, gateway *FakeGateway) *service.AdvisorService {
	t.Helper()

	return service.NewAdvisorService(
		NewTestPortfolioService(t, db, gateway),
		NewTestDividendService(t, db),
		NewTestSettingsService(t, db),
		NewTestAlertService(t, db, gateway),
		gateway,
		engine.Default(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB, gateway *FakeGateway) *service.SnapshotService {
	t.Helper()

	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewSnapshotService(snapshotRepo, NewTestPortfolioService(t, db, gateway))
}
