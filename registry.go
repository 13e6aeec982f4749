package hookrelay

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Registry tracks which plugin owns which hook implementations. Plugins
// register their implementations explicitly (a named owner plus one record
// per hook) instead of being discovered, which keeps the engine free of
// reflection.
//
// The registry owns a Relay and its bookkeeping maps are mutex-guarded; the
// dispatch path itself stays single-threaded (see Caller).
type Registry struct {
	mu      sync.RWMutex
	relay   *Relay
	logger  zerolog.Logger
	owners  map[string]any      // plugin name -> identity
	hooksOf map[string][]string // plugin name -> hook names it registered on
	blocked map[string]struct{}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger for the registry and every caller it
// creates. If not set, a no-op logger is used.
func WithRegistryLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry with its own relay.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:  zerolog.Nop(),
		owners:  make(map[string]any),
		hooksOf: make(map[string][]string),
		blocked: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.relay = NewRelay(WithRelayLogger(r.logger))
	return r
}

// Hooks returns the relay exposing the registry's callers.
func (r *Registry) Hooks() *Relay {
	return r.relay
}

// AddSpecs binds each specification to its caller, creating callers as
// needed. Implementations registered before their specification are
// validated at this point.
func (r *Registry) AddSpecs(specs ...*Spec) error {
	for _, spec := range specs {
		if spec == nil {
			return ErrNilSpec
		}
		if err := r.relay.Hook(spec.name).BindSpec(spec); err != nil {
			return err
		}
	}
	return nil
}

// Register attaches a plugin's implementations, keyed by hook name, under
// the given owner identity. A nil owner defaults to the plugin name. The
// registration is atomic: if any implementation is rejected, those already
// inserted are removed again.
//
// Registering a blocked name is a logged no-op.
func (r *Registry) Register(owner any, name string, impls map[string]*Impl) error {
	if name == "" {
		return fmt.Errorf("%w: plugin name", ErrEmptyName)
	}
	if owner == nil {
		owner = name
	}
	if !reflect.TypeOf(owner).Comparable() {
		return fmt.Errorf("%w: plugin %q, owner type %T", ErrOwnerNotComparable, name, owner)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocked[name]; ok {
		r.logger.Debug().Str("plugin", name).Msg("registration of blocked plugin skipped")
		return nil
	}
	if _, ok := r.owners[name]; ok {
		return fmt.Errorf("%w: %q", ErrPluginRegistered, name)
	}
	for registered, id := range r.owners {
		if id == owner {
			return fmt.Errorf("%w: identity already held by %q", ErrPluginRegistered, registered)
		}
	}

	hookNames := make([]string, 0, len(impls))
	for hookName := range impls {
		hookNames = append(hookNames, hookName)
	}
	sort.Strings(hookNames)

	added := make([]string, 0, len(hookNames))
	for _, hookName := range hookNames {
		impl := impls[hookName]
		if impl == nil {
			r.rollback(owner, added)
			return fmt.Errorf("%w: hook %q for plugin %q", ErrNilImpl, hookName, name)
		}
		if err := r.relay.Hook(hookName).AddImpl(impl.forPlugin(owner, name)); err != nil {
			r.rollback(owner, added)
			return err
		}
		added = append(added, hookName)
	}

	r.owners[name] = owner
	r.hooksOf[name] = hookNames
	r.logger.Debug().
		Str("plugin", name).
		Strs("hooks", hookNames).
		Msg("plugin registered")
	return nil
}

// Unregister detaches every implementation the named plugin registered.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) error {
	owner, ok := r.owners[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrPluginNotFound, name)
	}

	for _, hookName := range r.hooksOf[name] {
		if err := r.relay.Hook(hookName).RemoveImpl(owner); err != nil {
			return err
		}
	}
	delete(r.owners, name)
	delete(r.hooksOf, name)
	r.logger.Debug().Str("plugin", name).Msg("plugin unregistered")
	return nil
}

// rollback removes the implementations inserted by a registration that
// failed partway through.
func (r *Registry) rollback(owner any, hookNames []string) {
	for _, hookName := range hookNames {
		// inserted above under the same lock, so the removal cannot miss
		_ = r.relay.Hook(hookName).RemoveImpl(owner)
	}
}

// SetBlocked prevents future registrations under the name. An actively
// registered plugin is unregistered first.
func (r *Registry) SetBlocked(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[name]; ok {
		if err := r.unregisterLocked(name); err != nil {
			return err
		}
	}
	r.blocked[name] = struct{}{}
	return nil
}

// IsBlocked reports whether the name is blocked from registering.
func (r *Registry) IsBlocked(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.blocked[name]
	return ok
}

// Plugins returns the names of all registered plugins, sorted.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.owners))
	for name := range r.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckPending fails if any hook carries a non-optional implementation but
// no specification. Optional implementations tolerate exactly this absence;
// their own runtime errors are never suppressed.
func (r *Registry) CheckPending() error {
	var pending []string
	for _, name := range r.relay.Names() {
		caller := r.relay.Hook(name)
		if caller.HasSpec() {
			continue
		}
		for _, impl := range caller.Impls() {
			if !impl.optional {
				pending = append(pending, fmt.Sprintf("%s (plugin %q)", name, impl.plugin))
			}
		}
	}
	if len(pending) > 0 {
		return fmt.Errorf("%w: %s", ErrNoSpec, strings.Join(pending, ", "))
	}
	return nil
}
