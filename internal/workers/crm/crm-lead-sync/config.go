// internal/workers/crm/crm-lead-sync/config.go
package crmleadsync

import (
	"time"

	"ai-readiness-funnel/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	LeadSource string
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		Timeout:    timeout,
		LeadSource: "Website",
	}
}
