package svc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeRunner records every invocation and fails the verbs listed in
// failOn.
type fakeRunner struct {
	calls  []string
	failOn map[string]bool
}

func (f *fakeRunner) Run(_ context.Context, verb string, units ...string) error {
	call := verb + " " + strings.Join(units, " ")
	f.calls = append(f.calls, call)
	if f.failOn[call] || f.failOn[verb] {
		return errors.New("unit failed")
	}
	return nil
}

func defaultPlan() Plan {
	return Plan{
		Units: []string{"pipewire.service", "pipewire-pulse.service", "wireplumber.service"},
		Fallback: []Step{
			{Verb: "stop", Units: []string{"pipewire.socket"}},
			{Verb: "start", Units: []string{"pipewire.service"}, Required: true},
			{Verb: "start", Units: []string{"pipewire.socket"}},
			{Verb: "restart", Units: []string{"wireplumber.service"}, Required: true},
		},
	}
}

func TestApplyPrimarySucceeds(t *testing.T) {
	r := &fakeRunner{}
	if err := defaultPlan().Apply(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected single combined restart, got %v", r.calls)
	}
	if r.calls[0] != "restart pipewire.service pipewire-pulse.service wireplumber.service" {
		t.Errorf("call = %q", r.calls[0])
	}
}

func TestApplyFallbackOrder(t *testing.T) {
	r := &fakeRunner{failOn: map[string]bool{
		"restart pipewire.service pipewire-pulse.service wireplumber.service": true,
	}}
	if err := defaultPlan().Apply(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"restart pipewire.service pipewire-pulse.service wireplumber.service",
		"stop pipewire.socket",
		"start pipewire.service",
		"start pipewire.socket",
		"restart wireplumber.service",
	}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v", r.calls)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, r.calls[i], want[i])
		}
	}
}

func TestApplyOptionalStepFailureIgnored(t *testing.T) {
	r := &fakeRunner{failOn: map[string]bool{
		"restart pipewire.service pipewire-pulse.service wireplumber.service": true,
		"stop pipewire.socket": true,
		"start pipewire.socket": true,
	}}
	if err := defaultPlan().Apply(context.Background(), r); err != nil {
		t.Fatalf("optional failures must not fail the plan: %v", err)
	}
}

func TestApplyRequiredStepFailureFails(t *testing.T) {
	r := &fakeRunner{failOn: map[string]bool{
		"restart pipewire.service pipewire-pulse.service wireplumber.service": true,
		"start pipewire.service": true,
	}}
	err := defaultPlan().Apply(context.Background(), r)
	if err == nil {
		t.Fatal("expected plan failure")
	}
	// remaining fallback steps still ran
	if r.calls[len(r.calls)-1] != "restart wireplumber.service" {
		t.Errorf("fallback did not run to completion: %v", r.calls)
	}
}

func TestApplyAllRequiredFailuresReported(t *testing.T) {
	r := &fakeRunner{failOn: map[string]bool{
		"restart pipewire.service pipewire-pulse.service wireplumber.service": true,
		"start pipewire.service": true,
		"restart wireplumber.service": true,
	}}
	err := defaultPlan().Apply(context.Background(), r)
	if err == nil {
		t.Fatal("expected plan failure")
	}
	msg := err.Error()
	for _, unit := range []string{"pipewire.service", "wireplumber.service"} {
		if !strings.Contains(msg, unit) {
			t.Errorf("error %q missing %s", msg, unit)
		}
	}
}

func TestApplyEmptyPlan(t *testing.T) {
	if err := (Plan{}).Apply(context.Background(), &fakeRunner{}); err == nil {
		t.Fatal("expected error for empty plan")
	}
}

func TestApplyContextPassedThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &ctxRunner{}
	_ = Plan{Units: []string{"pipewire.service"}}.Apply(ctx, r)
	if r.ctx == nil {
		t.Fatal("runner never saw a context")
	}
	if r.ctx.Err() == nil {
		t.Error("expected cancelled context")
	}
}

type ctxRunner struct{ ctx context.Context }

func (c *ctxRunner) Run(ctx context.Context, verb string, units ...string) error {
	c.ctx = ctx
	return fmt.Errorf("%s refused", verb)
}
