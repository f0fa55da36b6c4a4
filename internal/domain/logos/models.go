package logos

import (
	"path"
	"strings"
	"unicode"
)

// SportBasketball is the sport label TheSportsDB uses for basketball teams.
const SportBasketball = "Basketball"

// Team is the subset of a TheSportsDB team the logo jobs need.
type Team struct {
	ID    string `json:"idTeam"`
	Name  string `json:"strTeam"`
	Sport string `json:"strSport"`
	Badge string `json:"strBadge,omitempty"`
	Logo  string `json:"strLogo,omitempty"`
}

// LogoURL prefers the badge image and falls back to the logo.
func (t Team) LogoURL() string {
	if t.Badge != "" {
		return t.Badge
	}
	return t.Logo
}

// PickBasketball returns the first basketball team in results.
func PickBasketball(results []Team) (Team, bool) {
	for _, t := range results {
		if t.Sport == SportBasketball {
			return t, true
		}
	}
	return Team{}, false
}

// MappingEntry points the front-end at a team's logo file.
type MappingEntry struct {
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	SportsDBID string `json:"sportsdb_id,omitempty"`
}

// Mapping is keyed by team name as it appears in the rankings file.
type Mapping map[string]MappingEntry

// Stats counts what a fetch run did.
type Stats struct {
	Total      int `json:"total"`
	Processed  int `json:"processed"`
	Found      int `json:"found"`
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// Remaining is the number of teams a later run still has to visit.
func (s Stats) Remaining() int {
	if s.Processed >= s.Total {
		return 0
	}
	return s.Total - s.Processed
}

// SanitizeFilename turns a team name into a file-safe stem:
// "Texas A&M" becomes "texas-aandm".
func SanitizeFilename(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "-", "'", "", "(", "", ")", "", "&", "and").Replace(s)
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// LogoFilename is the PNG file name for a team.
func LogoFilename(team string) string {
	return SanitizeFilename(team) + ".png"
}

// LogoPath is the public URL path for a logo file under urlDir.
func LogoPath(urlDir, filename string) string {
	return path.Join("/", urlDir, filename)
}

// NewEntry builds the mapping entry for a logo file served from urlDir.
func NewEntry(urlDir, filename, sportsDBID string) MappingEntry {
	return MappingEntry{
		Filename:   filename,
		Path:       LogoPath(urlDir, filename),
		SportsDBID: sportsDBID,
	}
}
