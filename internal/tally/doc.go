// Package tally turns differently-shaped per-candidate vote tables into one
// comparable long-form table.
//
// # Pipeline
//
// Each source table goes through the same steps before the tables are merged:
//
//	UnifySchema → AggregateBy → NormalizePercentages → Reconcile → Combine
//
// UnifySchema renames the source's neighborhood column to the canonical key.
// AggregateBy sums repeated neighborhoods so every key appears once.
// NormalizePercentages renames the raw count column to votes_absolute and
// appends vote_share_percent, computed against the candidate's own total.
// Reconcile left-joins every table onto the sorted union of neighborhood keys
// so all series share one x-axis, and Combine concatenates the result.
//
// # Missing data
//
// Missing values are carried as null cells and end up as nil pointers in
// domain.VoteRecord. They are never replaced by zero: a neighborhood a
// candidate's source does not mention and a candidate whose total is zero
// both render as gaps.
//
// # Errors
//
// A malformed source is fatal. Functions return errors wrapping one of
// ErrMissingColumn, ErrAmbiguousColumn, ErrMalformedSource or ErrDuplicateKey.
package tally
