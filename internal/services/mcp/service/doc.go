// Package service wires protocol transport to the MCP domain handlers.
//
// It is the transport adapter layer: the package knows how to run MCP over
// stdio or streamable HTTP and delegates dataset meaning to domain handlers.
package service
