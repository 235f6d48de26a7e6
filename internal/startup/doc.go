// Package startup handles configuration loading from environment
// variables, build information, and the structured lifecycle logging
// emitted during boot and shutdown.
package startup
