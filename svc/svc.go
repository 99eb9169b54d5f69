// Package svc restarts the user-session audio services. A restart is
// a Plan: one primary restart of all units, then an ordered fallback
// sequence tried only when the primary fails.
package svc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"pwrate/log"
)

// Runner executes one service-manager verb against a set of units.
type Runner interface {
	Run(ctx context.Context, verb string, units ...string) error
}

// Systemctl runs verbs through `systemctl --user`.
type Systemctl struct{}

func (Systemctl) Run(ctx context.Context, verb string, units ...string) error {
	args := append([]string{"--user", verb}, units...)
	cmd := exec.CommandContext(ctx, "systemctl", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if len(out) > 0 {
			return fmt.Errorf("systemctl --user %s: %w: %s", verb, err, out)
		}
		return fmt.Errorf("systemctl --user %s: %w", verb, err)
	}
	return nil
}

// Step is one fallback operation. Optional steps may fail without
// failing the plan; required steps may not.
type Step struct {
	Verb     string
	Units    []string
	Required bool
}

type Plan struct {
	Units    []string
	Fallback []Step
}

// Apply restarts the units, falling back to the step sequence when the
// combined restart fails. All fallback steps run in order regardless
// of individual failures; the plan fails only when a required step
// does.
func (p Plan) Apply(ctx context.Context, r Runner) error {
	if len(p.Units) == 0 {
		return errors.New("restart plan has no units")
	}

	err := r.Run(ctx, "restart", p.Units...)
	if err == nil {
		return nil
	}
	log.Warnf("combined restart failed, trying fallback: %v", err)

	var failed []string
	for _, s := range p.Fallback {
		if err := r.Run(ctx, s.Verb, s.Units...); err != nil {
			if s.Required {
				failed = append(failed, fmt.Sprintf("%s %v: %v", s.Verb, s.Units, err))
			} else {
				log.Warnf("optional fallback step %s %v failed: %v", s.Verb, s.Units, err)
			}
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("service restart failed even after socket bounce: %v", failed)
	}
	return nil
}
