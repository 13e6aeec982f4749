package hookrelay

import "errors"

// Sentinel errors covering the engine's failure categories.
// Callers match them with errors.Is(); messages stay lowercase so they
// compose when wrapped.
var (
	// ErrEmptyName indicates that a hook or plugin name was empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNilCallable indicates that a nil function was supplied for an
	// implementation or wrapper.
	ErrNilCallable = errors.New("callable cannot be nil")

	// ErrNilSpec indicates that a nil specification was supplied.
	ErrNilSpec = errors.New("specification cannot be nil")

	// ErrNilImpl indicates that a nil implementation was supplied.
	ErrNilImpl = errors.New("implementation cannot be nil")

	// ErrHistoricFirstResult indicates a specification requested both
	// historic and first-result dispatch, which are mutually exclusive.
	ErrHistoricFirstResult = errors.New("cannot have a historic first-result hook")

	// ErrSpecAlreadyBound indicates an attempt to bind a specification to a
	// hook that already has one. Binding is one-shot.
	ErrSpecAlreadyBound = errors.New("specification already bound")

	// ErrSpecNameMismatch indicates a specification was bound to a hook with
	// a different name.
	ErrSpecNameMismatch = errors.New("specification name does not match hook")

	// ErrImplFlags indicates an implementation declared contradictory
	// ordering flags (tryfirst and trylast together).
	ErrImplFlags = errors.New("implementation cannot be both tryfirst and trylast")

	// ErrImplParams indicates an implementation declared a parameter that is
	// not part of the hook's specification.
	ErrImplParams = errors.New("implementation declares undeclared parameter")

	// ErrOwnerNotComparable indicates an owner identity of an uncomparable
	// type (such as a slice, map or function) was supplied. Removal matches
	// owners with ==, so identities must support it.
	ErrOwnerNotComparable = errors.New("owner identity must be comparable")

	// ErrImplNotFound indicates a removal target was not present in the hook's
	// chain. Double removal is a programmer error, not silently ignored.
	ErrImplNotFound = errors.New("implementation not found")

	// ErrHistoricCall indicates a historic hook was invoked through the
	// non-historic call path. Historic hooks must use CallHistoric.
	ErrHistoricCall = errors.New("historic hooks must be invoked with CallHistoric")

	// ErrNotHistoric indicates CallHistoric was used on a non-historic hook.
	ErrNotHistoric = errors.New("hook is not historic")

	// ErrMissingArgument indicates a call omitted an argument that a
	// participating implementation declares.
	ErrMissingArgument = errors.New("hook call must provide argument")

	// ErrWrapperContract indicates a wrapper implementation violated the
	// single-suspension contract by not producing a teardown.
	ErrWrapperContract = errors.New("wrapper did not suspend")

	// ErrPluginRegistered indicates a plugin name or identity was registered
	// twice.
	ErrPluginRegistered = errors.New("plugin already registered")

	// ErrPluginNotFound indicates the named plugin was never registered.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrNoSpec indicates a non-optional implementation is attached to a hook
	// that has no bound specification.
	ErrNoSpec = errors.New("no specification for hook implementation")
)
