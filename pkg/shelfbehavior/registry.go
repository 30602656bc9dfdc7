package shelfbehavior

import (
	"fmt"
	"sync/atomic"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

// Registry is a named, hot-swappable table of Behaviors plus a
// SystemRegistry. ConfigLoader publishes new generations into it; a
// Session holds either a captured *Behavior reference (frozen at
// creation) or looks up by name through the Registry on every call,
// observing the newest published version.
//
// The registry itself is never partially updated: Publish swaps an
// internal snapshot atomically, so concurrent Get calls always observe
// either the old or the new generation, never a mix.
type Registry struct {
	snapshot atomic.Pointer[registrySnapshot]
	metrics  shelfmetrics.BehaviorMetrics
	gen      atomic.Int64
}

type registrySnapshot struct {
	behaviors map[string]*Behavior
	system    *SystemRegistry
}

// NewRegistry builds an empty Registry containing only the DEFAULT root.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snapshot.Store(&registrySnapshot{
		behaviors: map[string]*Behavior{"DEFAULT": NewRoot()},
		system:    NewSystemRegistry(DefaultSystemSettings(), nil),
	})
	return r
}

// WithMetrics attaches a BehaviorMetrics sink used by every Behavior
// resolved out of this registry going forward.
func (r *Registry) WithMetrics(m shelfmetrics.BehaviorMetrics) *Registry {
	r.metrics = m
	return r
}

// BehaviorSpec is one named node to compile into the registry: its parent
// name and the scope overrides to apply at this level.
type BehaviorSpec struct {
	Name   string
	Parent string
	Scopes map[Scope]SettingsOverride
}

// Compile builds a full parent-chain graph from a flat list of specs,
// validating there are no unknown parents and no cycles before returning.
// On any error the caller's existing registry state is left untouched —
// callers are expected to call Publish only after Compile succeeds.
func Compile(specs []BehaviorSpec) (map[string]*Behavior, error) {
	byName := make(map[string]BehaviorSpec, len(specs))
	for _, s := range specs {
		if s.Name == "" || s.Name == "DEFAULT" {
			return nil, fmt.Errorf("shelfbehavior: behavior name %q is reserved or empty", s.Name)
		}
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("shelfbehavior: duplicate behavior name %q", s.Name)
		}
		byName[s.Name] = s
	}

	if err := detectCycles(byName); err != nil {
		return nil, err
	}

	resolved := map[string]*Behavior{"DEFAULT": NewRoot()}
	var build func(name string) (*Behavior, error)
	build = func(name string) (*Behavior, error) {
		if b, ok := resolved[name]; ok {
			return b, nil
		}
		spec, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("shelfbehavior: behavior %q references unknown parent", name)
		}
		parentName := spec.Parent
		if parentName == "" {
			parentName = "DEFAULT"
		}
		parent, err := build(parentName)
		if err != nil {
			return nil, err
		}
		scopes := spec.Scopes
		b := parent.Derive(name, func(ob *OverrideBuilder) {
			for scope, override := range scopes {
				ob.Set(scope, override)
			}
		})
		resolved[name] = b
		return b, nil
	}

	for name := range byName {
		if _, err := build(name); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

func detectCycles(byName map[string]BehaviorSpec) error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(byName))

	var visit func(name string) error
	visit = func(name string) error {
		spec, ok := byName[name]
		if !ok {
			return nil // unknown parent reported separately by build()
		}
		switch color[name] {
		case gray:
			return fmt.Errorf("shelfbehavior: cycle detected at behavior %q", name)
		case black:
			return nil
		}
		color[name] = gray
		parent := spec.Parent
		if parent != "" && parent != "DEFAULT" {
			if err := visit(parent); err != nil {
				return err
			}
		}
		color[name] = black
		return nil
	}

	for name := range byName {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// Publish atomically swaps in a fully compiled set of behaviors and system
// registry. Sessions that captured an old *Behavior reference keep using
// it; sessions that resolve by name via Get observe the new generation.
func (r *Registry) Publish(behaviors map[string]*Behavior, system *SystemRegistry) {
	if r.metrics != nil {
		for name, b := range behaviors {
			behaviors[name] = b.WithMetrics(r.metrics)
		}
	}
	r.snapshot.Store(&registrySnapshot{behaviors: behaviors, system: system})
	gen := r.gen.Add(1)
	if r.metrics != nil {
		r.metrics.SetRegistryGeneration(gen)
	}
	logger.Info("behavior registry published", logger.Attempt(int(gen)))
}

// Get looks up a named Behavior in the current generation. Returns the
// DEFAULT root and false if name is not registered.
func (r *Registry) Get(name string) (*Behavior, bool) {
	snap := r.snapshot.Load()
	if snap == nil {
		return NewRoot(), false
	}
	b, ok := snap.behaviors[name]
	if !ok {
		return snap.behaviors["DEFAULT"], false
	}
	return b, true
}

// System resolves the effective SystemSettings for clusterName against the
// currently published generation.
func (r *Registry) System(clusterName string) SystemSettings {
	snap := r.snapshot.Load()
	if snap == nil || snap.system == nil {
		return DefaultSystemSettings()
	}
	return snap.system.Resolve(clusterName)
}

// Generation returns the registry's current publish generation, for
// observability/debugging.
func (r *Registry) Generation() int64 {
	return r.gen.Load()
}
