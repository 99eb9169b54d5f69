// Package doctor runs environment diagnostics for the rate switcher.
package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/gen2brain/malgo"

	"pwrate/config"
	"pwrate/pipewire"
	"pwrate/rate"
)

// Run executes the diagnostic checks and returns an exit code
// (0=all pass, 1=any fail).
func Run(cfg config.Config, swayConfig string) int {
	fmt.Println("pwrate doctor - environment diagnostics")
	fmt.Println("=======================================")

	allPass := true

	if !checkSourceConfig(cfg, swayConfig) {
		allPass = false
	}
	if !checkTools() {
		allPass = false
	}
	checkSamplerateConf(cfg)
	if !checkServer() {
		allPass = false
	}
	if !checkPlaybackDevices() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkSourceConfig(cfg config.Config, swayConfig string) bool {
	fmt.Println()
	fmt.Println("[1/5] Sample rate options block")

	data, err := os.ReadFile(swayConfig)
	if err != nil {
		fmt.Printf("  FAIL: cannot read %s: %v\n", swayConfig, err)
		return false
	}
	set, err := rate.Parse(string(data), cfg.Source.StartMarker, cfg.Source.EndMarker, cfg.Source.OptPrefix)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: allowed rates [%s]\n", set)
	return true
}

func checkTools() bool {
	fmt.Println()
	fmt.Println("[2/5] Required tools on PATH")

	ok := true
	for _, tool := range []string{"systemctl", "pw-metadata"} {
		if path, err := exec.LookPath(tool); err != nil {
			fmt.Printf("  FAIL: %s not found\n", tool)
			ok = false
		} else {
			fmt.Printf("  PASS: %s (%s)\n", tool, path)
		}
	}
	return ok
}

// Informational only: the conf does not exist until the first switch.
func checkSamplerateConf(cfg config.Config) {
	fmt.Println()
	fmt.Println("[3/5] Persisted sample rate")

	path := config.Expand(cfg.Pipewire.Conf)
	if r, ok := pipewire.ReadConfRate(path); ok {
		fmt.Printf("  PASS: %s holds %d Hz\n", path, r)
	} else {
		fmt.Printf("  INFO: %s not written yet (first switch creates it)\n", path)
	}
}

func checkServer() bool {
	fmt.Println()
	fmt.Println("[4/5] Audio server")

	r, err := pipewire.ServerRate()
	if err != nil {
		fmt.Printf("  FAIL: cannot reach audio server: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: server default sample rate %d Hz\n", r)
	return true
}

func checkPlaybackDevices() bool {
	fmt.Println()
	fmt.Println("[5/5] Playback devices")

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		fmt.Printf("  FAIL: cannot init audio backend: %v\n", err)
		return false
	}
	defer func() {
		ctx.Uninit()
		ctx.Free()
	}()

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		fmt.Printf("  FAIL: cannot list devices: %v\n", err)
		return false
	}
	if len(devices) == 0 {
		fmt.Println("  FAIL: no playback devices found")
		return false
	}
	for _, d := range devices {
		fmt.Printf("  PASS: %s\n", d.Name())
	}
	return true
}
