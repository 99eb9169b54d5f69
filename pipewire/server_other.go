//go:build !linux

package pipewire

import "errors"

func ServerRate() (int, error) {
	return 0, errors.New("audio server query is only supported on linux")
}
