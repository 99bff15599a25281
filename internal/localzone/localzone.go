// Package localzone enumerates the authoritative zone names kept in a
// local directory. The directory is the source of truth for which zones
// the remote secondary provider should carry.
package localzone

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Zone names start with a word character and contain at least one dot.
// Entries with an underscore are auxiliary files, never zones.
var zonePattern = regexp.MustCompile(`^\w.*\.`)

// List reads the zone directory and returns the set of zone names,
// lowercased. It fails if the directory cannot be read, or if the set is
// not strictly larger than minCount. The size floor is a circuit breaker:
// a transiently empty or misconfigured zone directory must not be allowed
// to drive a mass purge of the remote inventory.
func List(dir string, minCount int) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read zone directory %s: %w", dir, err)
	}

	zones := make(map[string]struct{})
	for _, e := range entries {
		name := e.Name()
		if strings.Contains(name, "_") {
			continue
		}
		if !zonePattern.MatchString(name) {
			continue
		}
		zones[strings.ToLower(name)] = struct{}{}
	}

	if len(zones) <= minCount {
		return nil, fmt.Errorf("only %d local zone(s) found in %s, need more than %d; refusing to continue with an implausibly small zone set", len(zones), dir, minCount)
	}
	return zones, nil
}
