// Package query implements the read-only aggregate queries over a catalog
// snapshot. Every function takes the *store.Store explicitly, never mutates
// it and never fails: an empty store yields zero or empty results.
//
//	CountWithTag             — sets whose tag list contains a tag
//	ThemeExists              — whether any set has a given theme
//	Tags / DistinctTags      — every tag once, in first-seen order
//	PrintTags                — writes DistinctTags one per line
//	SumPieces                — total piece count
//	PartitionByHundredPieces — non-zero piece counts split at > 100
//	CountByTheme             — sets per theme, absent themes excluded
package query
