// internal/workers/leads/send-lead-notification/config.go
package sendleadnotification

import (
	"time"

	"ai-readiness-funnel/internal/common/config"
)

type Config struct {
	Timeout              time.Duration
	SalesEmail           string
	SalesPhone           string
	EmailEnabled         bool
	SMSEnabled           bool
	SMSPriorityThreshold string
}

func LoadConfig(cfg *config.Config, wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Config{
		Timeout:              timeout,
		SalesEmail:           cfg.Notifications.SalesEmail,
		SalesPhone:           cfg.Notifications.SalesPhone,
		EmailEnabled:         cfg.Integrations.AWS.SES.Enabled,
		SMSEnabled:           cfg.Integrations.AWS.SNS.Enabled && cfg.Notifications.SMS.Enabled,
		SMSPriorityThreshold: cfg.Notifications.SMS.PriorityThreshold,
	}
}
