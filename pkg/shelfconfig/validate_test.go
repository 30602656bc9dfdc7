package shelfconfig

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(GetDefaultConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidMetricsPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_UnknownScopeRejected(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Behaviors = map[string]BehaviorConfig{
		"bad": {
			Parent: "DEFAULT",
			Scopes: map[string]SparseSettings{"NotAScope": {}},
		},
	}

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "unknown scope") {
		t.Fatalf("expected unknown scope error, got: %v", err)
	}
}

func TestValidate_ParentCycleRejected(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Behaviors = map[string]BehaviorConfig{
		"a": {Parent: "b"},
		"b": {Parent: "a"},
	}

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected parent cycle error, got: %v", err)
	}
}

func TestValidate_UnknownParentRejected(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Behaviors = map[string]BehaviorConfig{
		"a": {Parent: "ghost"},
	}

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "unknown parent") {
		t.Fatalf("expected unknown parent error, got: %v", err)
	}
}
