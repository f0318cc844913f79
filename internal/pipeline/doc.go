// Package pipeline turns the configured candidate sources into one immutable
// Dataset: every source is read, its neighborhood column unified, its counts
// summed per neighborhood and converted to shares of the candidate's own
// total, and finally all candidates are aligned on a shared neighborhood
// axis and combined into long-form records.
//
// A load either succeeds completely or fails; there is no partial dataset.
// Datasets are never mutated after Load returns, so a single instance can be
// shared by any number of concurrent readers.
package pipeline
