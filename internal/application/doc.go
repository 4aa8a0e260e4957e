// Package application provides application initialization and dependency wiring
// for the lookup server. It loads the box catalog, builds the matcher, handlers
// and router, and configures the HTTP server, keeping the main package focused
// on CLI parsing and orchestration.
package application
