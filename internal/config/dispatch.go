package config

import "time"

type DispatchConfig struct {
	MaxConcurrency  int           `yaml:"max_concurrency"`
	AttemptTimeout  time.Duration `yaml:"attempt_timeout"`
	AlertTitle      string        `yaml:"alert_title"`
	AllowRepublish  bool          `yaml:"allow_republish"`
	PublishClaimTTL time.Duration `yaml:"publish_claim_ttl"`
}

func loadDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		MaxConcurrency:  getEnvAsInt("DISPATCH_MAX_CONCURRENCY", 16),
		AttemptTimeout:  getEnvAsDuration("DISPATCH_ATTEMPT_TIMEOUT", 10*time.Second),
		AlertTitle:      getEnv("DISPATCH_ALERT_TITLE", ""),
		AllowRepublish:  getEnvAsBool("DISPATCH_ALLOW_REPUBLISH", false),
		PublishClaimTTL: getEnvAsDuration("DISPATCH_PUBLISH_CLAIM_TTL", 10*time.Minute),
	}
}
