package request

// UpdateSettingsRequest represents the request body for replacing the stored
// settings. SMTPPassword is write-only: an empty value keeps the stored
// secret, responses never include it.
type UpdateSettingsRequest struct {
	Cash                float64 `json:"cash"`
	MonthlyDeposit      float64 `json:"monthlyDeposit"`
	TargetIncome        float64 `json:"targetIncome"`
	DividendDropPct     float64 `json:"dividendDropPct"`
	NotifyEmail         string  `json:"notifyEmail"`
	NotifySMS           string  `json:"notifySms"`
	EmailEnabled        bool    `json:"emailEnabled"`
	SMSEnabled          bool    `json:"smsEnabled"`
	SMTPHost            string  `json:"smtpHost"`
	SMTPPort            int     `json:"smtpPort"`
	SMTPSender          string  `json:"smtpSender"`
	SMTPPassword        string  `json:"smtpPassword,omitempty"`
	AlertOnDividendDrop bool    `json:"alertOnDividendDrop"`
	AlertOnPriceDrop    bool    `json:"alertOnPriceDrop"`
}
