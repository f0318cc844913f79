// Package http contains the HTTP handlers: the chart page, the JSON API over
// the active dataset, CSV/XLSX downloads, dataset reload and health.
//
// Handlers depend on small service interfaces so they can be tested with
// mocks, and report failures as RFC 7807 problem details through
// errors.ErrorHandler.
package http
