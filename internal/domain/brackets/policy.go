package brackets

import (
	"fmt"
	"strconv"
	"strings"

	"bbmi-data-export/internal/domain/sheet"
)

const (
	minDivision = 1
	maxDivision = 5

	division1MaxSeed = 16
	standardMaxSeed  = 8

	// missingSeed stands in for an absent bracket seed; it exceeds every ceiling.
	missingSeed = 999
)

// Policy carries the per-division rules: seed ceiling and region format.
type Policy interface {
	Division() string
	MaxSeed() int
	// Region validates and renders the region cell. ok is false when the row must be dropped.
	Region(c sheet.Cell) (region string, ok bool)
}

// Division1Policy seeds 1-16 and requires numeric regions (1, 2, 3, 4).
type Division1Policy struct{}

func (Division1Policy) Division() string { return "1" }
func (Division1Policy) MaxSeed() int     { return division1MaxSeed }

func (Division1Policy) Region(c sheet.Cell) (string, bool) {
	if c.IsBlank() {
		return "", false
	}
	v, ok := c.Float()
	if !ok {
		return "", false
	}
	return strconv.FormatInt(int64(v), 10), true
}

// StandardDivisionPolicy seeds 1-8 and accepts free-form regions (1A, 2B, ...).
type StandardDivisionPolicy struct {
	Number int
}

func (p StandardDivisionPolicy) Division() string { return strconv.Itoa(p.Number) }
func (StandardDivisionPolicy) MaxSeed() int       { return standardMaxSeed }

func (StandardDivisionPolicy) Region(c sheet.Cell) (string, bool) {
	if c.IsBlank() {
		return "", false
	}
	return c.String(), true
}

// PolicyFor returns the policy for a division number.
func PolicyFor(division int) (Policy, error) {
	switch {
	case division == 1:
		return Division1Policy{}, nil
	case division > minDivision && division <= maxDivision:
		return StandardDivisionPolicy{Number: division}, nil
	default:
		return nil, fmt.Errorf("unknown division %d (want %d-%d)", division, minDivision, maxDivision)
	}
}

// ParseDivision accepts "1".."5" or "D1".."D5".
func ParseDivision(raw string) (Policy, error) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(raw)), "D")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid division %q", raw)
	}
	return PolicyFor(n)
}
