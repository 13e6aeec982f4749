package hookrelay

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Caller binds one hook name to its specification, implementation chain and
// call history, and exposes the invocation and mutation operations. A Caller
// is single-writer: it provides no internal locking and assumes
// single-threaded use, or external synchronization when shared.
type Caller struct {
	name   string
	spec   *Spec
	chain  chain
	hist   *history
	logger zerolog.Logger
}

// CallerOption configures a Caller.
type CallerOption func(*Caller)

// WithCallerLogger sets the logger for diagnostic warnings and dispatch
// traces. If not set, a no-op logger is used.
func WithCallerLogger(logger zerolog.Logger) CallerOption {
	return func(c *Caller) {
		c.logger = logger
	}
}

// NewCaller creates an unbound caller for the named hook. A specification
// may be bound later, exactly once, with BindSpec.
func NewCaller(name string, opts ...CallerOption) *Caller {
	c := &Caller{
		name:   name,
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the hook name.
func (c *Caller) Name() string { return c.name }

// HasSpec reports whether a specification has been bound.
func (c *Caller) HasSpec() bool { return c.spec != nil }

// Spec returns the bound specification, or nil while unbound.
func (c *Caller) Spec() *Spec { return c.spec }

// IsHistoric reports whether calls are recorded and replayed. The history's
// presence is the signal; it exists from the moment a historic
// specification is bound.
func (c *Caller) IsHistoric() bool { return c.hist != nil }

// HistoryLen returns the number of recorded historic calls.
func (c *Caller) HistoryLen() int {
	if c.hist == nil {
		return 0
	}
	return c.hist.len()
}

// Impls returns the implementations in dispatch order (non-wrappers then
// wrappers). The returned slice is a copy.
func (c *Caller) Impls() []*Impl {
	return c.chain.sequence()
}

// BindSpec binds the hook's specification. Binding is one-shot and fails if
// a specification is already bound or its name differs from the hook's.
// Implementations already registered are validated against the new
// specification.
func (c *Caller) BindSpec(spec *Spec) error {
	if spec == nil {
		return fmt.Errorf("%w: hook %q", ErrNilSpec, c.name)
	}
	if c.spec != nil {
		return fmt.Errorf("%w: hook %q", ErrSpecAlreadyBound, c.name)
	}
	if spec.name != c.name {
		return fmt.Errorf("%w: hook %q, specification %q", ErrSpecNameMismatch, c.name, spec.name)
	}

	for _, impl := range c.chain.sequence() {
		if err := verifyImpl(spec, impl); err != nil {
			return err
		}
	}

	c.spec = spec
	if spec.historic {
		c.hist = newHistory()
	}
	return nil
}

// Call invokes every registered implementation with the given keyed
// arguments and returns the aggregated non-nil results, most-recent-first.
// For a first-result hook the slice holds at most one element. Historic
// hooks must use CallHistoric instead.
//
// A call omitting a parameter the specification requires logs a diagnostic
// warning; the call itself proceeds.
func (c *Caller) Call(args Args) ([]any, error) {
	if c.IsHistoric() {
		return nil, fmt.Errorf("%w: hook %q", ErrHistoricCall, c.name)
	}
	c.warnMissingArgs(args)

	return multicall(c.name, c.chain.sequence(), args, c.firstResult())
}

// CallFirst invokes the hook and unwraps the aggregated results to a single
// value, the natural shape for first-result hooks. Nil is the no-result
// sentinel.
func (c *Caller) CallFirst(args Args) (any, error) {
	results, err := c.Call(args)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// CallHistoric invokes a historic hook: the call is recorded first, then
// dispatched to all current implementations, and the same arguments will be
// replayed against every implementation registered afterwards. If callback
// is non-nil it is invoked once per non-nil result. Historic dispatch never
// short-circuits.
func (c *Caller) CallHistoric(args Args, callback func(any)) error {
	if !c.IsHistoric() {
		return fmt.Errorf("%w: hook %q", ErrNotHistoric, c.name)
	}
	c.warnMissingArgs(args)

	rec := c.hist.add(args, callback)
	c.logger.Debug().
		Str("hook", c.name).
		Str("call_id", rec.id).
		Msg("historic call recorded")

	results, err := multicall(c.name, c.chain.sequence(), args, false)
	if err != nil {
		return err
	}
	if callback != nil {
		for _, res := range results {
			callback(res)
		}
	}
	return nil
}

// CallExtra invokes the hook once with additional, temporarily
// participating implementations. Each extra is inserted as an ordinary
// entry: unowned, non-wrapper, no priority flags. The original chain is
// restored unconditionally, even when the call fails.
func (c *Caller) CallExtra(extras []*Impl, args Args) ([]any, error) {
	nonWrappers, wrappers := c.chain.snapshot()
	defer c.chain.restore(nonWrappers, wrappers)

	for _, extra := range extras {
		if extra == nil || extra.fn == nil {
			return nil, fmt.Errorf("%w: extra implementation for hook %q must be an ordinary callable", ErrNilCallable, c.name)
		}
		c.chain.insert(extra.asExtra())
	}

	return c.Call(args)
}

// AddImpl inserts an implementation into the chain. When a specification is
// bound, the implementation's declared parameters must be a subset of the
// specification's. On a historic hook, all previously recorded calls are
// immediately replayed against the new implementation alone, invoking each
// record's callback once per non-nil result; the replay does not re-record
// anything. A replay failure removes the implementation again, so a failed
// AddImpl never leaves the chain changed.
func (c *Caller) AddImpl(impl *Impl) error {
	if impl == nil {
		return fmt.Errorf("%w: hook %q", ErrNilImpl, c.name)
	}
	if err := verifyImpl(c.spec, impl); err != nil {
		return err
	}
	if c.spec != nil && c.spec.warnOnImpl != "" {
		c.logger.Warn().
			Str("hook", c.name).
			Str("plugin", impl.plugin).
			Msg(c.spec.warnOnImpl)
	}

	c.chain.insert(impl)

	if !c.IsHistoric() {
		return nil
	}
	for _, rec := range c.hist.all() {
		results, err := multicall(c.name, []*Impl{impl}, rec.args, false)
		if err != nil {
			c.chain.removeEntry(impl)
			return fmt.Errorf("replaying %s against plugin %q: %w", rec.id, impl.plugin, err)
		}
		if rec.callback == nil {
			continue
		}
		for _, res := range results {
			rec.callback(res)
		}
	}
	return nil
}

// RemoveImpl removes the first implementation whose owner identity matches,
// searching non-wrappers then wrappers. Removing an identity that is not
// present is an error; the relative order of the remaining entries is never
// disturbed.
func (c *Caller) RemoveImpl(owner any) error {
	if err := c.chain.remove(owner); err != nil {
		return fmt.Errorf("hook %q: %w", c.name, err)
	}
	return nil
}

func (c *Caller) firstResult() bool {
	return c.spec != nil && c.spec.firstResult
}

// warnMissingArgs logs a non-fatal diagnostic when the call omits a
// parameter the specification declares as required.
func (c *Caller) warnMissingArgs(args Args) {
	if c.spec == nil {
		return
	}
	var missing []string
	for _, p := range c.spec.params {
		if _, ok := args[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		c.logger.Warn().
			Str("hook", c.name).
			Strs("missing", missing).
			Msg("call omits arguments declared in the hook specification")
	}
}

// verifyImpl checks an implementation's declared parameters against the
// specification. A nil specification verifies trivially; pending
// implementations are validated again when a specification is bound.
func verifyImpl(spec *Spec, impl *Impl) error {
	if spec == nil {
		return nil
	}
	for _, p := range impl.params {
		if !spec.allows(p) {
			return fmt.Errorf("%w: %q declared by plugin %q, hook %q accepts %v",
				ErrImplParams, p, impl.plugin, spec.name, append(spec.Params(), spec.defaults...))
		}
	}
	return nil
}
