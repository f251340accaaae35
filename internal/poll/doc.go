// Package poll implements the incremental polling engine for Orb datasets.
//
// The engine keeps a per-caller, per-dataset high-water mark of delivered
// record timestamps so repeated fetches within a session never re-deliver
// records the caller has already seen. A CursorStore holds the marks, a
// Coordinator resolves each fetch's lower bound and advances the mark on
// success, and an Orchestrator fans coordinated fetches out across dataset
// kinds while keeping per-dataset failures isolated from each other.
package poll
