// Package services holds the application's business operations behind the
// HTTP handlers: the active dataset with its reload cycle, chart and record
// queries over it, and health reporting.
package services
