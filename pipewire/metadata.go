package pipewire

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"pwrate/rate"
)

// GraphRate asks pw-metadata for the live clock.rate of the running
// graph. Best effort: callers treat any error as "unknown".
func GraphRate(ctx context.Context) (int, error) {
	out, err := exec.CommandContext(ctx, "pw-metadata", "-n", "settings", "0", "clock.rate").Output()
	if err != nil {
		return 0, fmt.Errorf("pw-metadata: %w", err)
	}
	n, ok := rate.ExtractRate(string(out))
	if !ok {
		return 0, fmt.Errorf("no rate in pw-metadata output")
	}
	return n, nil
}

// ForceRate pushes the selection into the live graph via
// clock.force-rate, taking effect without a service restart.
func ForceRate(ctx context.Context, selected int) error {
	cmd := exec.CommandContext(ctx, "pw-metadata", "-n", "settings", "0",
		"clock.force-rate", strconv.Itoa(selected))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pw-metadata force-rate: %w (%s)", err, firstLine(out))
	}
	return nil
}

func firstLine(b []byte) string {
	for i, c := range b {
		if c == '\n' {
			return string(b[:i])
		}
	}
	return string(b)
}
