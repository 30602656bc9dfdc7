package shelfconfig

import "testing"

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected default config to validate, got: %v", err)
	}
}

func TestApplyDefaults_NormalizesEnumCase(t *testing.T) {
	lower := "linearize"
	cfg := &Config{
		Behaviors: map[string]BehaviorConfig{
			"x": {
				Parent: "DEFAULT",
				Scopes: map[string]SparseSettings{
					"Read": {ReadModeSC: &lower},
				},
			},
		},
	}
	ApplyDefaults(cfg)

	got := *cfg.Behaviors["x"].Scopes["Read"].ReadModeSC
	if got != "LINEARIZE" {
		t.Errorf("expected normalized LINEARIZE, got %q", got)
	}
}

func TestApplyDefaults_ClusterOverridesKeepOwnDefaults(t *testing.T) {
	cfg := &Config{
		System: SystemConfig{
			Clusters: map[string]SystemSettingsConfig{
				"eu": {},
			},
		},
	}
	ApplyDefaults(cfg)

	if cfg.System.Clusters["eu"].Connections.Max != 300 {
		t.Errorf("expected cluster default max connections 300, got %d", cfg.System.Clusters["eu"].Connections.Max)
	}
}
