package hookrelay

import "fmt"

// Spec is the immutable contract for one hook: the parameters every call is
// expected to provide and the dispatch mode. Build one with NewSpec and bind
// it to a Caller exactly once.
type Spec struct {
	name        string
	params      []string
	defaults    []string
	firstResult bool
	historic    bool
	warnOnImpl  string
}

// SpecOpts configures a hook specification.
type SpecOpts struct {
	// Params are the parameter names every call must provide.
	Params []string

	// Defaults are additional parameter names that carry defaults; calls may
	// omit them without triggering a diagnostic.
	Defaults []string

	// FirstResult stops dispatch at the first implementation that produces a
	// non-nil result.
	FirstResult bool

	// Historic records every call and replays history against
	// implementations registered later. Historic hooks cannot be FirstResult.
	Historic bool

	// WarnOnImpl, when non-empty, is logged whenever an implementation is
	// registered for this hook. Used to flag deprecated extension points.
	WarnOnImpl string
}

// NewSpec builds a hook specification. It fails if the name is empty or if
// both FirstResult and Historic are requested; that combination is a
// configuration error, not a runtime one.
func NewSpec(name string, opts SpecOpts) (*Spec, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: hook name", ErrEmptyName)
	}
	if opts.FirstResult && opts.Historic {
		return nil, fmt.Errorf("%w: %q", ErrHistoricFirstResult, name)
	}

	return &Spec{
		name:        name,
		params:      append([]string(nil), opts.Params...),
		defaults:    append([]string(nil), opts.Defaults...),
		firstResult: opts.FirstResult,
		historic:    opts.Historic,
		warnOnImpl:  opts.WarnOnImpl,
	}, nil
}

// Name returns the hook name this specification describes.
func (s *Spec) Name() string { return s.name }

// Params returns the required parameter names, in declaration order.
func (s *Spec) Params() []string { return append([]string(nil), s.params...) }

// Defaults returns the parameter names that carry defaults.
func (s *Spec) Defaults() []string { return append([]string(nil), s.defaults...) }

// FirstResult reports whether dispatch stops at the first non-nil result.
func (s *Spec) FirstResult() bool { return s.firstResult }

// Historic reports whether calls are recorded and replayed against
// later-registered implementations.
func (s *Spec) Historic() bool { return s.historic }

// allows reports whether param is declared by the specification, either as a
// required parameter or one with a default.
func (s *Spec) allows(param string) bool {
	for _, p := range s.params {
		if p == param {
			return true
		}
	}
	for _, p := range s.defaults {
		if p == param {
			return true
		}
	}
	return false
}
