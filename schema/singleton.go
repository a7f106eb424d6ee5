package schema

import (
	"fmt"
	"sync"

	"github.com/c360studio/credence/confidence"
)

// Built-in schema names. The core confidence schema name is
// confidence.DefaultSchema.
const (
	// TrustCore is the base trust judgment schema.
	TrustCore = "v1.trust.core"

	// TrustExtended inherits TrustCore and adds dimensions about the
	// subject's conclusions and methods.
	TrustExtended = "v1.trust.extended"
)

// Global registry instance and guard. Unlike a sync.Once singleton, the
// instance must be rebuildable: Reset restores the built-in baseline at
// any time, so a plain mutex guards lazy creation.
var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it with the
// built-in schemas on first use.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = builtinRegistry()
	}
	return defaultRegistry
}

// Reset discards all registrations on the process-wide registry and
// reconstructs the built-in baseline. Call it between logically
// independent units of work that mutate the registry.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = builtinRegistry()
}

func builtinRegistry() *Registry {
	r := NewRegistry()
	register := func(s *Schema, err error) {
		if err == nil {
			err = r.Register(s)
		}
		if err != nil {
			panic(fmt.Sprintf("schema: built-in registration failed: %v", err))
		}
	}

	register(New(confidence.DefaultSchema, WithDimensions(
		confidence.DimSourceReliability,
		confidence.DimMethodQuality,
		confidence.DimInternalConsistency,
		confidence.DimTemporalFreshness,
		confidence.DimCorroboration,
		confidence.DimDomainApplicability,
	)))
	register(New(TrustCore, WithDimensions(
		"competence",
		"honesty",
		"reliability",
		"transparency",
	)))
	// "honesty" overlaps the parent on purpose; resolution dedupes it.
	register(New(TrustExtended,
		WithDimensions("honesty", "conclusions", "methods"),
		WithInherits(TrustCore),
	))
	return r
}
