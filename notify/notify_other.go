//go:build !linux

package notify

func send(summary, body, icon, category string, timeoutMs int) {}
