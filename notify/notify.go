// Package notify sends best-effort desktop notifications. Delivery
// failures are swallowed: the switch result never depends on whether
// the notification daemon is up.
package notify

const appName = "pwrate"

// Ok announces a completed switch.
func Ok(body string, timeoutMs int) {
	send("Pipewire Sample Rate Switcher", body, "audio-card", "device", timeoutMs)
}

// Err announces a failed switch.
func Err(body string, timeoutMs int) {
	send("Pipewire Sample Rate Switcher — Error", body, "dialog-error", "", timeoutMs)
}
