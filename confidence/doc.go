// Package confidence models multi-dimensional confidence scores.
//
// A DimensionalConfidence carries an overall score in [0,1] plus a sparse
// set of named dimension scores (source reliability, corroboration,
// temporal freshness, ...). Absent dimensions mean "unknown", not zero.
//
// Values are range-checked at every construction and mutation point; an
// out-of-range value is always a hard error. Transform methods
// (WithDimension, Decay, BoostCorroboration) return new instances and
// leave the receiver untouched. RecalculateOverall is the single
// documented in-place recompute.
//
// The package has no dependency on the schema registry; validating a
// dimension set against a named schema is an explicit, separate step via
// the schema package.
package confidence
