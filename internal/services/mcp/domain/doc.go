// Package domain defines the MCP tool, prompt, and resource surface for Orb
// network-quality data. Tools wrap the incremental polling engine so repeat
// calls within a session deliver only records the caller has not seen.
package domain
