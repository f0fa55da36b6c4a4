package config

import "time"

// SportsDBConfig controls how we talk to the TheSportsDB API.
type SportsDBConfig struct {
	BaseURL      string
	APIKey       string
	RequestDelay time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	Timeout      time.Duration
}

func loadSportsDB() SportsDBConfig {
	return SportsDBConfig{
		BaseURL:      envOrDefault(envSportsDBBaseURL, defaultSportsDBBaseURL),
		APIKey:       envOrDefault(envSportsDBAPIKey, defaultSportsDBAPIKey),
		RequestDelay: durationEnvOrDefault(envSportsDBDelay, defaultSportsDBDelay),
		MaxRetries:   intEnvOrDefault(envSportsDBRetries, defaultSportsDBRetries),
		RetryDelay:   durationEnvOrDefault(envSportsDBBackoff, defaultSportsDBBackoff),
		Timeout:      durationEnvOrDefault(envSportsDBTimeout, defaultSportsDBTimeout),
	}
}
