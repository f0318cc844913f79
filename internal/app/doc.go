// Package app wires configuration, observability, the dataset service and
// the HTTP layer into a runnable server.
//
// # Initialization Flow
//
//	1. Resolve paths and make sure writable directories exist
//	2. Initialize OpenTelemetry and the pipeline metrics
//	3. Create the dataset and health services
//	4. Set up middleware and routes
//	5. Load the first dataset, then serve until the context is cancelled
//
// # Graceful Shutdown
//
// Run listens for SIGINT and SIGTERM. On shutdown in-flight requests are
// given Server.ShutdownTimeout to complete and telemetry is flushed.
//
// # Error Handling
//
// All initialization errors are returned to the caller. The app does not
// call os.Exit() directly, allowing the main function to control the exit
// process.
package app
