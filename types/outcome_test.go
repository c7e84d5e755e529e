package types

import (
	"errors"
	"strings"
	"testing"
)

func TestSucceeded(t *testing.T) {
	o := Succeeded("/tmp/out/librust.so")

	if o.Status != OutcomeSuccess {
		t.Errorf("expected success status, got %s", o.Status)
	}
	if o.IsFailure() {
		t.Error("success outcome reported as failure")
	}
	if o.ArtifactPath != "/tmp/out/librust.so" {
		t.Errorf("unexpected artifact path %q", o.ArtifactPath)
	}
	if o.Stage != "" || o.Message != "" {
		t.Errorf("success outcome carries failure fields: %+v", o)
	}
}

func TestFailed(t *testing.T) {
	o := Failed(StageCompile, errors.New("cc exited with code 1"))

	if o.Status != OutcomeFailure {
		t.Errorf("expected failure status, got %s", o.Status)
	}
	if !o.IsFailure() {
		t.Error("failure outcome not reported as failure")
	}
	if o.Stage != StageCompile {
		t.Errorf("expected compile stage, got %s", o.Stage)
	}
	if o.ArtifactPath != "" {
		t.Errorf("failure outcome carries artifact path %q", o.ArtifactPath)
	}
}

func TestOutcomeString(t *testing.T) {
	success := Succeeded("/out/libgo.so")
	if !strings.Contains(success.String(), "/out/libgo.so") {
		t.Errorf("success string missing artifact path: %q", success.String())
	}

	failure := Failed(StageFetch, errors.New("remote not found"))
	got := failure.String()
	if !strings.Contains(got, "fetch") || !strings.Contains(got, "remote not found") {
		t.Errorf("failure string missing stage or message: %q", got)
	}
}
