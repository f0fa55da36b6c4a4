package sportsdb

// searchResponse is the body of searchteams.php. Teams is null when nothing matched.
type searchResponse struct {
	Teams []teamResponse `json:"teams"`
}

type teamResponse struct {
	IDTeam   string `json:"idTeam"`
	StrTeam  string `json:"strTeam"`
	StrSport string `json:"strSport"`
	StrBadge string `json:"strBadge"`
	StrLogo  string `json:"strLogo"`
	// Older payloads carry the badge under strTeamBadge.
	StrTeamBadge string `json:"strTeamBadge"`
}
