package main

import (
	"testing"
)

func TestParseFlags(t *testing.T) {
	overrides, err := parseFlags([]string{
		"--config", "boxfit.yaml",
		"-b", "boxes.tsv",
		"--port", "9000",
		"--rate-limit-rps", "0",
	})
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}

	if overrides.ConfigFile != "boxfit.yaml" {
		t.Fatalf("unexpected config file %q", overrides.ConfigFile)
	}
	if overrides.BoxFile == nil || *overrides.BoxFile != "boxes.tsv" {
		t.Fatalf("unexpected box file override %v", overrides.BoxFile)
	}
	if overrides.Port == nil || *overrides.Port != "9000" {
		t.Fatalf("unexpected port override %v", overrides.Port)
	}
	if overrides.RateLimitRPS == nil || *overrides.RateLimitRPS != 0 {
		t.Fatalf("expected rate limit rps override of 0")
	}
	if overrides.RateLimitBurst != nil {
		t.Fatalf("expected burst to be left unset, got %d", *overrides.RateLimitBurst)
	}
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"--nope"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}
