// Package model defines the form schema entities shared by the builder,
// collector, and export pipelines: a Form is an ordered list of typed Fields,
// and a Response is one immutable submission against it.
package model
