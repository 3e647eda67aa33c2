package store

import "errors"

var (
	// ErrHeaderNotFound is returned when a store does not have the
	// requested header.
	ErrHeaderNotFound = errors.New("header not found")

	// ErrRecipientNotFound is returned when a store has no fee recipient
	// recorded for the requested header.
	ErrRecipientNotFound = errors.New("fee recipient not found")

	// ErrNoCanonicalHeader is returned when a height has no canonical
	// binding.
	ErrNoCanonicalHeader = errors.New("no canonical header at height")

	// ErrNotBootstrapped is returned when reading parameters from a store
	// that was never bootstrapped.
	ErrNotBootstrapped = errors.New("store not bootstrapped")

	// ErrAlreadyBootstrapped is returned when bootstrapping a store that
	// already holds state.
	ErrAlreadyBootstrapped = errors.New("store already bootstrapped")

	// ErrHeaderExists is returned when saving a header whose fingerprint
	// is already present.
	ErrHeaderExists = errors.New("header already exists")
)
