package sportsdb

import "time"

const (
	ProviderName = "sportsdb"

	defaultBaseURL     = "https://www.thesportsdb.com/api/v1/json"
	defaultAPIKey      = "3"
	defaultHTTPTimeout = 15 * time.Second
	searchPath         = "searchteams.php"
	maxErrorBody       = 512
	// Logos are small PNGs; anything larger is not an image we want.
	maxLogoBytes = 5 << 20
)
