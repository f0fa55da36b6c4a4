package brackets

import (
	"strings"

	"bbmi-data-export/internal/domain/sheet"
)

// Reason explains why a row was not admitted.
type Reason string

const (
	ReasonMissingTeam    Reason = "missing_team"
	ReasonMissingRegion  Reason = "missing_region"
	ReasonInvalidRegion  Reason = "invalid_region"
	ReasonInvalidSeed    Reason = "invalid_seed"
	ReasonSeedOutOfRange Reason = "seed_out_of_range"
	ReasonEmptySlug      Reason = "empty_slug"
)

// Result is the outcome of extracting one division.
type Result struct {
	Records  []Record
	Rejected map[Reason]int
}

// RejectedTotal returns how many rows were dropped.
func (r Result) RejectedTotal() int {
	total := 0
	for _, n := range r.Rejected {
		total += n
	}
	return total
}

// Extract filters rows to the ones that belong on the bracket and normalizes
// them into records, preserving input order. It never fails: rows that do not
// qualify are dropped and unparseable fields fall back to zero.
func Extract(rows []RawRow, policy Policy) []Record {
	return ExtractDetailed(rows, policy).Records
}

// ExtractDetailed is Extract plus per-reason rejection counts.
func ExtractDetailed(rows []RawRow, policy Policy) Result {
	res := Result{
		Records:  make([]Record, 0, len(rows)),
		Rejected: map[Reason]int{},
	}
	for _, row := range rows {
		rec, reason, ok := extractRow(row, policy)
		if !ok {
			res.Rejected[reason]++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

func extractRow(row RawRow, policy Policy) (Record, Reason, bool) {
	teamCell := row.Get(FieldTeam)
	if teamCell.IsBlank() {
		return Record{}, ReasonMissingTeam, false
	}
	regionCell := row.Get(FieldRegion)
	if regionCell.IsBlank() {
		return Record{}, ReasonMissingRegion, false
	}
	region, ok := policy.Region(regionCell)
	if !ok {
		return Record{}, ReasonInvalidRegion, false
	}

	seed := missingSeed
	if seedCell := row.Get(FieldBracketSeed); !seedCell.IsAbsent() {
		v, ok := seedCell.Int()
		if !ok {
			return Record{}, ReasonInvalidSeed, false
		}
		seed = v
	}
	if seed < 1 || seed > policy.MaxSeed() {
		return Record{}, ReasonSeedOutOfRange, false
	}

	team := strings.TrimSpace(teamCell.String())
	slug := Slug(team)
	if slug == "" {
		return Record{}, ReasonEmptySlug, false
	}

	return Record{
		Team:                  team,
		Division:              policy.Division(),
		Region:                region,
		WIAASeed:              sheet.IntOr(row.Get(FieldWIAASeed), 0),
		BBMISeed:              sheet.IntOr(row.Get(FieldBBMISeed), 0),
		Seed:                  seed,
		Slug:                  slug,
		RegionalSemis:         probability(row, FieldRegionalSemis),
		RegionalChampion:      probability(row, FieldRegionalChampion),
		SectionalSemiFinalist: probability(row, FieldSectionalSemiFinalist),
		SectionalFinalist:     probability(row, FieldSectionalFinalist),
		StateQualifier:        probability(row, FieldStateQualifier),
		StateFinalist:         probability(row, FieldStateFinalist),
		StateChampion:         probability(row, FieldStateChampion),
	}, "", true
}

func probability(row RawRow, f Field) float64 {
	return sheet.FloatOr(row.Get(f), 0)
}
