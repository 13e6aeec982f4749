// Package hookrelay implements an in-process, synchronous hook-dispatch
// engine: named extension points ("hooks") to which independent plugins
// attach implementations, and a caller that invokes every attached
// implementation in a deterministic order.
//
// A hook is described by a Spec (its declared parameters and dispatch mode)
// and invoked through a Caller. Implementations are plain records built with
// NewImpl or NewWrapper; there is no reflection and no signature
// introspection: plugin authors declare the parameters their function
// accepts, and each call passes only the matching subset of the keyed
// arguments.
//
// Ordering within a hook's chain is: trylast implementations (registration
// order), then normal implementations (registration order), then tryfirst
// implementations (registration order). Wrapper implementations always
// execute outermost: their before-phase runs ahead of the whole non-wrapper
// chain and their after-phase observes, and may replace, the aggregated
// outcome. Results are aggregated most-recent-first; this reverse order is a
// deliberate, stable contract.
//
// The engine is single-threaded by design. A Caller provides no internal
// locking; sharing one across goroutines requires external synchronization.
package hookrelay
