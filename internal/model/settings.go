package model

import (
	"encoding/json"
	"time"
)

// Settings holds the user-tunable parameters of the dashboard.
// Single-writer, replaced atomically on edit.
type Settings struct {
	Cash                 float64 `json:"cash"`
	MonthlyDeposit       float64 `json:"monthlyDeposit"`
	TargetIncome         float64 `json:"targetIncome"` // Desired monthly dividend income
	DividendDropPct      float64 `json:"dividendDropPct"`
	NotifyEmail          string  `json:"notifyEmail"`
	NotifySMS            string  `json:"notifySms"`
	EmailEnabled         bool    `json:"emailEnabled"`
	SMSEnabled           bool    `json:"smsEnabled"`
	SMTPHost             string  `json:"smtpHost"`
	SMTPPort             int     `json:"smtpPort"`
	SMTPSender           string  `json:"smtpSender"`
	SMTPPassword         string  `json:"-"` // Stored fernet-encrypted, never serialized
	AlertOnDividendDrop  bool    `json:"alertOnDividendDrop"`
	AlertOnPriceDrop     bool    `json:"alertOnPriceDrop"`
}

// DefaultSettings mirrors the initial session state of the dashboard.
func DefaultSettings() Settings {
	return Settings{
		Cash:                0,
		MonthlyDeposit:      200,
		TargetIncome:        1000,
		DividendDropPct:     10,
		AlertOnDividendDrop: true,
		AlertOnPriceDrop:    true,
	}
}

// Snapshot is a saved copy of a portfolio metrics computation.
// The payload is the JSON-encoded metrics snapshot; it is opaque to storage
// and embedded verbatim in API responses.
type Snapshot struct {
	ID      string          `json:"id"`
	TakenAt time.Time       `json:"takenAt"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
