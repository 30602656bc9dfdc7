package shelfbehavior

import (
	"fmt"
	"time"

	"github.com/marmos91/shelf/internal/logger"
	"github.com/marmos91/shelf/pkg/shelfmetrics"
)

// Behavior is a named, immutable node in a parent chain that contributes
// sparse, scope-tagged overrides to a Settings resolution.
// Behavior and the Settings it resolves are immutable value types;
// derivation always produces a new instance.
type Behavior struct {
	name   string
	parent *Behavior
	scopes map[Scope]SettingsOverride

	metrics shelfmetrics.BehaviorMetrics
	cache   *resolveCache
}

// rootBehavior is the implicit "DEFAULT" node every chain bottoms out at.
// It carries no overrides of its own; DefaultSettings() is the base every
// resolution starts from.
var rootBehavior = &Behavior{name: "DEFAULT"}

// NewRoot returns the DEFAULT behavior — the root of every parent chain.
func NewRoot() *Behavior {
	return rootBehavior
}

// Name returns this behavior's name ("DEFAULT" for the root).
func (b *Behavior) Name() string {
	if b == nil {
		return "DEFAULT"
	}
	return b.name
}

// Parent returns the node this behavior derives from, or nil for the root.
func (b *Behavior) Parent() *Behavior {
	if b == nil {
		return nil
	}
	return b.parent
}

// WithMetrics returns a copy of b that reports resolutions through m. Pass
// nil to disable.
func (b *Behavior) WithMetrics(m shelfmetrics.BehaviorMetrics) *Behavior {
	clone := *b
	clone.metrics = m
	clone.cache = newResolveCache()
	return &clone
}

// OverrideBuilder accumulates SettingsOverride values per Scope for a
// single Derive call.
type OverrideBuilder struct {
	scopes map[Scope]SettingsOverride
}

// Set stages the override for the given scope, replacing any previously
// staged override for that same scope in this builder.
func (ob *OverrideBuilder) Set(scope Scope, override SettingsOverride) *OverrideBuilder {
	if ob.scopes == nil {
		ob.scopes = map[Scope]SettingsOverride{}
	}
	ob.scopes[scope] = override
	return ob
}

// Derive returns a new child Behavior named name, parented at b, whose
// overrides are produced by applying f to an empty OverrideBuilder. The
// parent is never mutated.
func (b *Behavior) Derive(name string, f func(*OverrideBuilder)) *Behavior {
	ob := &OverrideBuilder{}
	if f != nil {
		f(ob)
	}
	child := &Behavior{
		name:    name,
		parent:  b,
		scopes:  ob.scopes,
		metrics: b.metrics,
		cache:   newResolveCache(),
	}
	return child
}

// chain returns the parent-to-self path, root first, detecting cycles by
// bounding the walk at a generous depth (construction-time cycle rejection
// happens in the Registry/ConfigLoader; this is a defensive backstop).
func (b *Behavior) chain() []*Behavior {
	var nodes []*Behavior
	cur := b
	for i := 0; cur != nil && i < 1024; i++ {
		nodes = append(nodes, cur)
		cur = cur.parent
	}
	// reverse: root first
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}

type resolveKey struct {
	k Kind
	s Shape
	m Mode
}

// Resolve returns the single Settings governing a request of the given
// (Kind, Shape, Mode), walking root-to-leaf and applying each level's
// matching scopes in most-general-to-most-specific order.
//
// Resolution is pure, referentially transparent, and memoisable by
// (behavior, Kind, Shape, Mode).
func (b *Behavior) Resolve(kind Kind, shape Shape, mode Mode) Settings {
	start := time.Now()
	key := resolveKey{kind, shape, mode}

	if b.cache != nil {
		if cached, ok := b.cache.get(key); ok {
			if b.metrics != nil {
				b.metrics.RecordCacheHit(b.Name())
			}
			return cached
		}
		if b.metrics != nil {
			b.metrics.RecordCacheMiss(b.Name())
		}
	}

	scopes := scopesFor(kind, shape, mode)

	settings := DefaultSettings()
	appliedScope := "none"
	for _, node := range b.chain() {
		for _, scope := range scopes {
			if override, ok := node.scopes[scope]; ok {
				settings = override.applyTo(settings)
				appliedScope = scope.String()
			}
		}
	}

	if b.cache != nil {
		b.cache.put(key, settings)
	}

	if b.metrics != nil {
		b.metrics.RecordResolution(b.Name(), appliedScope, time.Since(start))
	}
	logger.Debug("settings resolved",
		logger.Behavior(b.Name()), logger.OpKind(kind.String()), logger.OpShape(shape.String()),
		logger.Mode(mode.String()), logger.Scope(appliedScope), logger.DurationMs(logger.Duration(start)))

	return settings
}

// String implements fmt.Stringer for debugging/CLI output.
func (b *Behavior) String() string {
	if b == nil {
		return "DEFAULT"
	}
	if b.parent == nil {
		return b.name
	}
	return fmt.Sprintf("%s->%s", b.parent.String(), b.name)
}
