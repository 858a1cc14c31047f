// Package audit implements the asynchronous audit event pipeline: a bounded
// channel dispatcher with drop-if-full semantics and pluggable sinks.
//
// The request path only ever pays for a non-blocking channel send; sinks run
// on the dispatcher goroutine and are drained on Close.
package audit
