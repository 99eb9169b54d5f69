package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"pwrate/config"
	"pwrate/doctor"
	"pwrate/log"
	"pwrate/notify"
	"pwrate/pipewire"
	"pwrate/rate"
	"pwrate/svc"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	swayFlag := flag.String("config", "", "Path to sway config (default: ~/.config/sway/config)")
	confFlag := flag.String("conf", "", "Path to pwrate config.toml (default: ~/.config/pwrate/config.toml)")
	showFlag := flag.Bool("show", false, "Show parsed options and current rate (file & live if available); do not change anything")
	pickFlag := flag.Bool("pick", false, "Pick the new rate interactively instead of cycling")
	liveFlag := flag.Bool("live", false, "Apply via clock.force-rate on the running graph, no service restart")
	doctorFlag := flag.Bool("doctor", false, "Run environment diagnostics and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("pwrate %s\n", version)
		return 0
	}

	if logPath, err := log.ResolveDir(*logPathFlag); err == nil {
		log.SetDir(logPath)
		if err := log.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log directory: %v\n", err)
		}
	}
	defer log.Close()

	tomlPath, explicit := config.ResolvePath(*confFlag)
	cfg, err := config.Load(tomlPath, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	swayConfig := *swayFlag
	if swayConfig == "" {
		swayConfig = config.Expand(cfg.Source.Config)
	}

	if *doctorFlag {
		return doctor.Run(cfg, swayConfig)
	}

	content, err := os.ReadFile(swayConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", swayConfig, err)
		return 1
	}
	allowed, err := rate.Parse(string(content), cfg.Source.StartMarker, cfg.Source.EndMarker, cfg.Source.OptPrefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", swayConfig, err)
		return 1
	}

	// Current rate from the conf file; unknown falls back to the
	// first option, as "before the start" of the cycle.
	confPath := config.Expand(cfg.Pipewire.Conf)
	current, known := pipewire.ReadConfRate(confPath)
	if !known {
		current = allowed[0]
	}

	if *showFlag {
		showStatus(cfg, allowed, current, known)
		return 0
	}

	next := allowed.Next(current)
	if *pickFlag {
		chosen, ok, err := pickRate(allowed, current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Println("Aborted.")
			return 0
		}
		next = chosen
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	if *liveFlag {
		if err := pipewire.ForceRate(ctx, next); err != nil {
			return fail(cfg, fmt.Sprintf("Failed to set clock.force-rate: %v.", err))
		}
	} else {
		if err := pipewire.WriteConf(confPath, next, allowed); err != nil {
			return fail(cfg, fmt.Sprintf("Failed to update %s: %v.", confPath, err))
		}
		if err := restartPlan(cfg).Apply(ctx, svc.Systemctl{}); err != nil {
			return fail(cfg, fmt.Sprintf("Updated file, but restart failed: %v.", err))
		}
	}

	log.Switch(current, next, *liveFlag, time.Since(start))
	fmt.Printf("Switched default.clock.rate: %d -> %d\n", current, next)
	if cfg.Notify.Enabled {
		notify.Ok(fmt.Sprintf("Switched default.clock.rate: %d -> %d Hz.", current, next), cfg.Notify.OkMs)
	}
	return 0
}

// fail reports an external-operation failure on stderr and, best
// effort, on the desktop, then maps to exit code 1.
func fail(cfg config.Config, msg string) int {
	log.Error(msg)
	if cfg.Notify.Enabled {
		notify.Err(msg, cfg.Notify.ErrMs)
	}
	fmt.Fprintln(os.Stderr, msg)
	return 1
}

func restartPlan(cfg config.Config) svc.Plan {
	steps := make([]svc.Step, len(cfg.Restart.Fallback))
	for i, s := range cfg.Restart.Fallback {
		steps[i] = svc.Step{Verb: s.Verb, Units: s.Units, Required: s.Required}
	}
	return svc.Plan{Units: cfg.Restart.Units, Fallback: steps}
}
