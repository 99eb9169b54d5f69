// Package pipewire persists the selected sample rate and reads the
// rate back from the conf file, the graph metadata, or the server.
package pipewire

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"pwrate/rate"
)

// Loose match: the rate may share a line with the opening brace and
// may be quoted.
var confRateRe = regexp.MustCompile(`default\.clock\.rate\s*=\s*"?(\d{4,5})"?`)

// ReadConfRate scans the samplerate conf for the persisted rate.
// Missing or unparseable files read as unknown.
func ReadConfRate(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	m := confRateRe.FindSubmatch(data)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// WriteConf overwrites path with the canonical drop-in block for the
// selected rate, creating parent directories as needed.
func WriteConf(path string, selected int, allowed rate.Set) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	text := fmt.Sprintf(
		"context.properties = {\n    default.clock.rate          = %d\n    default.clock.allowed-rates = %s\n}\n",
		selected, allowed.Bracket(),
	)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
