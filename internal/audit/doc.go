// Package audit defines the audit event model, sink contract, and the
// asynchronous dispatcher that forwards engine events to a caller-provided
// sink. Emission never blocks the request path when DropIfFull is set.
package audit
