package sportsdb

import (
	"strings"

	"bbmi-data-export/internal/domain/logos"
)

func mapTeams(in []teamResponse) []logos.Team {
	out := make([]logos.Team, 0, len(in))
	for _, t := range in {
		out = append(out, mapTeam(t))
	}
	return out
}

func mapTeam(t teamResponse) logos.Team {
	badge := strings.TrimSpace(t.StrBadge)
	if badge == "" {
		badge = strings.TrimSpace(t.StrTeamBadge)
	}
	return logos.Team{
		ID:    strings.TrimSpace(t.IDTeam),
		Name:  strings.TrimSpace(t.StrTeam),
		Sport: strings.TrimSpace(t.StrSport),
		Badge: badge,
		Logo:  strings.TrimSpace(t.StrLogo),
	}
}
