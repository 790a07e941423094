// Package types provides the shared tool-service contract.
//
// Every operation exposed by the service is a Tool belonging to a Service.
// Callers send an ExecuteRequest naming the tool and its parameters and get
// back a Result: either a success payload under Data["result"] or a single
// human-readable error string. No structured error crosses this boundary.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool, Parameter: Tool specification
//   - Context: Per-request execution context
//   - Result: Standard operation result
//   - ExecuteRequest: Tool execution request body
//
// Example Usage:
//
//	res := types.Success("Successfully created directory '/tmp/x'")
//	fail := types.Failure("File '/tmp/y' does not exist")
package types
