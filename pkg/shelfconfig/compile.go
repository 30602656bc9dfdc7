package shelfconfig

import (
	"fmt"

	"github.com/marmos91/shelf/pkg/shelfbehavior"
)

// Compile converts a validated Config into the []shelfbehavior.BehaviorSpec
// and *shelfbehavior.SystemRegistry the BehaviorTree resolves Settings
// from. Callers run Validate first; Compile additionally rejects a scope
// name that slipped past validation (defense in depth) by returning an
// error rather than panicking, matching the hot reload contract's "a
// partial parse must leave the existing registry intact."
func Compile(cfg *Config) ([]shelfbehavior.BehaviorSpec, *shelfbehavior.SystemRegistry, error) {
	specs := make([]shelfbehavior.BehaviorSpec, 0, len(cfg.Behaviors))
	for name, behaviorCfg := range cfg.Behaviors {
		scopes := make(map[shelfbehavior.Scope]shelfbehavior.SettingsOverride, len(behaviorCfg.Scopes))
		for scopeName, sparse := range behaviorCfg.Scopes {
			scope, err := shelfbehavior.ParseScope(scopeName)
			if err != nil {
				return nil, nil, fmt.Errorf("behavior %q: %w", name, err)
			}
			override, err := compileSparseSettings(sparse)
			if err != nil {
				return nil, nil, fmt.Errorf("behavior %q scope %q: %w", name, scopeName, err)
			}
			scopes[scope] = override
		}
		specs = append(specs, shelfbehavior.BehaviorSpec{
			Name:   name,
			Parent: behaviorCfg.Parent,
			Scopes: scopes,
		})
	}

	system, err := compileSystemRegistry(cfg.System)
	if err != nil {
		return nil, nil, err
	}

	return specs, system, nil
}

func compileSparseSettings(s SparseSettings) (shelfbehavior.SettingsOverride, error) {
	out := shelfbehavior.SettingsOverride{
		AbandonAfter:           s.AbandonAfter,
		WaitForCall:            s.WaitForCall,
		WaitForConnect:         s.WaitForConnect,
		WaitForSocketAfterFail: s.WaitForSocketAfterFail,
		MaxAttempts:            s.MaxAttempts,
		DelayBetween:           s.DelayBetween,
		ResetTTLOnReadAtPct:    s.ResetTTLOnReadAtPct,
		MaxConcurrentServers:   s.MaxConcurrentServers,
		AllowInlineMemory:      s.AllowInlineMemory,
		AllowInlineSSD:         s.AllowInlineSSD,
		RecordQueueSize:        s.RecordQueueSize,
		SendKey:                s.SendKey,
		UseCompression:         s.UseCompression,
		DurableDelete:          s.DurableDelete,
	}

	if len(s.ReplicaOrder) > 0 {
		order := make([]shelfbehavior.NodeCategory, len(s.ReplicaOrder))
		for i, name := range s.ReplicaOrder {
			cat, err := shelfbehavior.ParseNodeCategory(name)
			if err != nil {
				return out, err
			}
			order[i] = cat
		}
		out.ReplicaOrder = order
	}

	if s.ReadModeSC != nil {
		mode, err := shelfbehavior.ParseReadModeSC(*s.ReadModeSC)
		if err != nil {
			return out, err
		}
		out.ReadModeSC = &mode
	}

	if s.ReadModeAP != nil {
		mode, err := shelfbehavior.ParseReadModeAP(*s.ReadModeAP)
		if err != nil {
			return out, err
		}
		out.ReadModeAP = &mode
	}

	if s.ExceptionPolicy != nil {
		policy, err := shelfbehavior.ParseExceptionPolicy(*s.ExceptionPolicy)
		if err != nil {
			return out, err
		}
		out.ExceptionPolicy = &policy
	}

	return out, nil
}

func compileSystemRegistry(cfg SystemConfig) (*shelfbehavior.SystemRegistry, error) {
	def := compileSystemSettings(cfg.Default)

	clusters := make(map[string]shelfbehavior.SystemSettingsOverride, len(cfg.Clusters))
	for name, clusterCfg := range cfg.Clusters {
		settings := compileSystemSettings(clusterCfg)
		clusters[name] = shelfbehavior.SystemSettingsOverride{
			Connections:    &settings.Connections,
			CircuitBreaker: &settings.CircuitBreaker,
			Refresh:        &settings.Refresh,
		}
	}

	return shelfbehavior.NewSystemRegistry(def, clusters), nil
}

func compileSystemSettings(cfg SystemSettingsConfig) shelfbehavior.SystemSettings {
	return shelfbehavior.SystemSettings{
		Connections: shelfbehavior.ConnectionSettings{
			Min:     cfg.Connections.Min,
			Max:     cfg.Connections.Max,
			MaxIdle: cfg.Connections.MaxIdle,
		},
		CircuitBreaker: shelfbehavior.CircuitBreakerSettings{
			TendIntervalsWindow: cfg.CircuitBreaker.TendIntervalsWindow,
			MaxErrorsWindow:     cfg.CircuitBreaker.MaxErrorsWindow,
		},
		Refresh: shelfbehavior.RefreshSettings{
			TendInterval: cfg.Refresh.TendInterval,
		},
	}
}
