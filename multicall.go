package hookrelay

import (
	"fmt"
	"slices"
)

// Outcome carries the aggregated result of one dispatch as seen by wrapper
// after-phases: either a results sequence (most-recent-first) or a captured
// failure. A wrapper may replace it, superseding the outcome observed by
// wrappers further out and ultimately by the caller.
type Outcome struct {
	results []any
	err     error
}

// Results returns the aggregated non-nil results, most-recent-first. It is
// nil when the dispatch failed.
func (o *Outcome) Results() []any { return o.results }

// Err returns the captured failure, or nil on success.
func (o *Outcome) Err() error { return o.err }

// ForceResult replaces the outcome with a successful results sequence,
// clearing any captured failure.
func (o *Outcome) ForceResult(results ...any) {
	o.results = results
	o.err = nil
}

// ForceError replaces the outcome with a failure, discarding any results.
func (o *Outcome) ForceError(err error) {
	o.results = nil
	o.err = err
}

// multicall executes the hook's dispatch sequence for one call.
//
// Wrapper before-phases run first, in list order (the last wrapper in the
// list is innermost). Non-wrapper implementations then run in list order,
// each receiving only its declared subset of args; every non-nil result is
// aggregated most-recent-first. When firstResult is set, dispatch stops at
// the first non-nil result. Finally every entered wrapper's after-phase runs
// in reverse entry order, observing (and possibly replacing) the outcome.
//
// A failure from a before-phase or a non-wrapper implementation stops the
// forward phase; all already-entered wrappers still complete their
// after-phase with the failure as the outcome.
func multicall(hook string, impls []*Impl, args Args, firstResult bool) ([]any, error) {
	var (
		teardowns []Teardown
		results   []any
		callErr   error
	)

	var wrappers, plain []*Impl
	for _, impl := range impls {
		if impl.IsWrapper() {
			wrappers = append(wrappers, impl)
		} else {
			plain = append(plain, impl)
		}
	}

	for _, w := range wrappers {
		wargs, err := w.callArgs(args)
		if err != nil {
			callErr = fmt.Errorf("hook %q: %w", hook, err)
			break
		}
		teardown, err := w.wrapFn(wargs)
		if err != nil {
			callErr = err
			break
		}
		if teardown == nil {
			callErr = fmt.Errorf("%w: wrapper %q for hook %q", ErrWrapperContract, w.plugin, hook)
			break
		}
		teardowns = append(teardowns, teardown)
	}

	if callErr == nil {
		for _, impl := range plain {
			iargs, err := impl.callArgs(args)
			if err != nil {
				callErr = fmt.Errorf("hook %q: %w", hook, err)
				break
			}
			res, err := impl.fn(iargs)
			if err != nil {
				callErr = err
				break
			}
			if res != nil {
				results = append(results, res)
				if firstResult {
					break
				}
			}
		}
	}

	slices.Reverse(results)
	out := &Outcome{results: results, err: callErr}
	if callErr != nil {
		out.results = nil
	}

	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i](out)
	}

	if out.err != nil {
		return nil, out.err
	}
	return out.results, nil
}
