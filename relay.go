package hookrelay

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Relay is the namespace exposing one Caller per hook name to plugins and
// host code. Looking up a name that does not exist yet auto-creates an
// unbound Caller, so specifications and implementations may arrive in any
// order.
//
// The name-to-caller map is safe for concurrent lookup; the callers it hands
// out are not. See Caller.
type Relay struct {
	mu      sync.RWMutex
	callers map[string]*Caller
	logger  zerolog.Logger
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithRelayLogger sets the logger inherited by every caller the relay
// creates. If not set, a no-op logger is used.
func WithRelayLogger(logger zerolog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

// NewRelay creates an empty relay.
func NewRelay(opts ...RelayOption) *Relay {
	r := &Relay{
		callers: make(map[string]*Caller),
		logger:  zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Hook returns the caller for the named hook, creating an unbound one on
// first use.
func (r *Relay) Hook(name string) *Caller {
	r.mu.RLock()
	caller, ok := r.callers[name]
	r.mu.RUnlock()
	if ok {
		return caller
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if caller, ok := r.callers[name]; ok {
		return caller
	}
	caller = NewCaller(name, WithCallerLogger(r.logger))
	r.callers[name] = caller
	return caller
}

// Has reports whether a caller exists for the name without creating one.
func (r *Relay) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.callers[name]
	return ok
}

// Names returns all known hook names, sorted.
func (r *Relay) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.callers))
	for name := range r.callers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
