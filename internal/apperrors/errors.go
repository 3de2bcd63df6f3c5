package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTickerNotTracked indicates that a ticker is not part of the fixed
	// tracked fund set.
	ErrTickerNotTracked = errors.New("ticker is not tracked")

	// ErrHoldingNotFound indicates that no holding row exists for a ticker.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrAlertConfigNotFound indicates that no price alert configuration
	// exists for a ticker.
	ErrAlertConfigNotFound = errors.New("price alert config not found")

	// ErrSnapshotNotFound indicates that a snapshot with the given ID does
	// not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSettingNotFound indicates that a settings key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint
// violations. These errors indicate that an operation cannot be completed due
// to business rules.
var (
	// ErrPortfolioInvalid indicates that the portfolio configuration is
	// invalid (negative shares or dividend rates). While invalid, every
	// scoring and recommendation operation is gated off: this is a
	// precondition gate, not an exception.
	ErrPortfolioInvalid = errors.New("portfolio configuration is invalid")

	// ErrNegativeAmount indicates that an amount field has an invalid
	// negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrStopLossOutOfRange indicates a stop-loss percentage outside the
	// accepted 5-50 range.
	ErrStopLossOutOfRange = errors.New("stop loss percent out of range")

	// ErrHistoryOutOfOrder indicates an attempt to append a dividend record
	// dated before the latest stored observation.
	ErrHistoryOutOfOrder = errors.New("dividend history must be appended in time order")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveHoldings  = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveDividends = errors.New("failed to retrieve dividend history")
	ErrFailedToRetrieveAlerts    = errors.New("failed to evaluate alerts")
	ErrFailedToRetrieveSettings  = errors.New("failed to retrieve settings")
	ErrFailedToRetrieveSnapshots = errors.New("failed to retrieve snapshots")
	ErrFailedToComputeMetrics    = errors.New("failed to compute portfolio metrics")
	ErrFailedToComputeAdvice     = errors.New("failed to compute recommendation")
	ErrFailedToSaveHolding       = errors.New("failed to save holding")
	ErrFailedToSaveAlertConfig   = errors.New("failed to save price alert config")
	ErrFailedToSaveSettings      = errors.New("failed to save settings")
	ErrFailedToRecordDividend    = errors.New("failed to record dividend")
	ErrFailedToSaveSnapshot      = errors.New("failed to save snapshot")
)
