package hookrelay

import (
	"fmt"
	"reflect"
)

// Args is the keyed-argument mapping passed to a hook call. Only keyed
// arguments exist; positional arguments are unrepresentable.
type Args map[string]any

// HookFunc is an ordinary hook implementation. It receives only the subset
// of the call arguments matching its declared parameters. A nil result is
// treated as absent and excluded from aggregation; a non-nil error aborts
// the remainder of the chain and propagates through any open wrappers.
type HookFunc func(args Args) (any, error)

// Teardown is a wrapper's after-phase. It receives the outcome of the rest
// of the chain and may replace it via Outcome.ForceResult or
// Outcome.ForceError.
type Teardown func(out *Outcome)

// WrapperFunc is a wrapper implementation's before-phase. The returned
// Teardown is the wrapper's single suspension point: it is resumed exactly
// once, after the whole non-wrapper chain (and any inner wrappers) has run.
// Returning a nil Teardown with a nil error violates the wrapper contract.
type WrapperFunc func(args Args) (Teardown, error)

// Impl is an immutable record describing one registered hook
// implementation: the owning plugin identity, the callable, its declared
// parameters and its ordering flags. Build one with NewImpl or NewWrapper.
type Impl struct {
	owner    any
	plugin   string
	params   []string
	fn       HookFunc
	wrapFn   WrapperFunc
	optional bool
	tryFirst bool
	tryLast  bool
}

// ImplOpts configures a hook implementation record.
type ImplOpts struct {
	// Params are the argument names the callable accepts. Each call passes
	// exactly these, and a call omitting one fails with ErrMissingArgument.
	// When a specification is bound they must be a subset of its parameters.
	Params []string

	// Owner is the opaque identity used for removal. It must be comparable.
	// The Registry stamps it automatically; set it only when adding
	// implementations to a Caller directly. Nil is allowed for transient
	// implementations.
	Owner any

	// Optional tolerates the absence of a matching specification: the
	// implementation is skipped by Registry.CheckPending instead of being
	// reported. It never suppresses the implementation's own errors.
	Optional bool

	// TryFirst places the implementation in the chain's trailing block.
	TryFirst bool

	// TryLast places the implementation in the chain's leading block.
	TryLast bool
}

// NewImpl builds an ordinary (non-wrapper) implementation record for the
// named plugin. It fails if fn is nil or if both TryFirst and TryLast are
// set.
func NewImpl(plugin string, fn HookFunc, opts ImplOpts) (*Impl, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: implementation for plugin %q", ErrNilCallable, plugin)
	}
	if err := validateImplOpts(plugin, opts); err != nil {
		return nil, err
	}

	return &Impl{
		owner:    opts.Owner,
		plugin:   plugin,
		params:   append([]string(nil), opts.Params...),
		fn:       fn,
		optional: opts.Optional,
		tryFirst: opts.TryFirst,
		tryLast:  opts.TryLast,
	}, nil
}

// NewWrapper builds a wrapper implementation record for the named plugin.
// The TryFirst/TryLast flags order wrappers only relative to each other;
// wrappers always execute outside the non-wrapper chain.
func NewWrapper(plugin string, fn WrapperFunc, opts ImplOpts) (*Impl, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: wrapper for plugin %q", ErrNilCallable, plugin)
	}
	if err := validateImplOpts(plugin, opts); err != nil {
		return nil, err
	}

	return &Impl{
		owner:    opts.Owner,
		plugin:   plugin,
		params:   append([]string(nil), opts.Params...),
		wrapFn:   fn,
		optional: opts.Optional,
		tryFirst: opts.TryFirst,
		tryLast:  opts.TryLast,
	}, nil
}

func validateImplOpts(plugin string, opts ImplOpts) error {
	if opts.TryFirst && opts.TryLast {
		return fmt.Errorf("%w: plugin %q", ErrImplFlags, plugin)
	}
	if opts.Owner != nil && !reflect.TypeOf(opts.Owner).Comparable() {
		return fmt.Errorf("%w: plugin %q, owner type %T", ErrOwnerNotComparable, plugin, opts.Owner)
	}
	return nil
}

// Owner returns the opaque identity the implementation was registered under.
func (im *Impl) Owner() any { return im.owner }

// Plugin returns the display name of the owning plugin.
func (im *Impl) Plugin() string { return im.plugin }

// Params returns the argument names the callable accepts.
func (im *Impl) Params() []string { return append([]string(nil), im.params...) }

// IsWrapper reports whether the implementation wraps the chain.
func (im *Impl) IsWrapper() bool { return im.wrapFn != nil }

// Optional reports whether a missing specification is tolerated.
func (im *Impl) Optional() bool { return im.optional }

// TryFirst reports the tryfirst ordering flag.
func (im *Impl) TryFirst() bool { return im.tryFirst }

// TryLast reports the trylast ordering flag.
func (im *Impl) TryLast() bool { return im.tryLast }

// forPlugin returns a copy stamped with the registering plugin's identity
// and display name. Used by the Registry so one record can be declared once
// and owned by whoever registers it.
func (im *Impl) forPlugin(owner any, plugin string) *Impl {
	clone := *im
	clone.owner = owner
	clone.plugin = plugin
	return &clone
}

// asExtra returns a copy demoted to an ordinary, unowned, unprioritized
// implementation for a temporary CallExtra chain.
func (im *Impl) asExtra() *Impl {
	clone := *im
	clone.owner = nil
	clone.wrapFn = nil
	clone.tryFirst = false
	clone.tryLast = false
	if clone.plugin == "" {
		clone.plugin = "<extra>"
	}
	return &clone
}

// callArgs extracts the subset of args the implementation declares,
// preserving nothing else. A declared argument absent from the call is a
// usage error.
func (im *Impl) callArgs(args Args) (Args, error) {
	sub := make(Args, len(im.params))
	for _, p := range im.params {
		v, ok := args[p]
		if !ok {
			return nil, fmt.Errorf("%w: %q (implementation %q)", ErrMissingArgument, p, im.plugin)
		}
		sub[p] = v
	}
	return sub, nil
}
