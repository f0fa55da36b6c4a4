package logos

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadTeamNames reads team names from a rankings JSON array, taking each
// object's "team" field or, failing that, its "Team" field.
func LoadTeamNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rankings: %w", err)
	}
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode rankings %s: %w", path, err)
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name := teamName(item); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func teamName(item map[string]any) string {
	for _, key := range []string{"team", "Team"} {
		if s, ok := item[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
