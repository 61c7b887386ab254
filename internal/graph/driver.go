// Package graph exports the documentation coverage map to a graph
// database: sections, their source files, and internal page links.
package graph

import (
	"context"
)

// Record represents a single result row from a query.
type Record map[string]any

// Driver defines the graph database operations the exporter needs.
// Any bolt-speaking database (Neo4j, Memgraph) can implement it.
type Driver interface {
	// Execute runs a read query and returns results.
	Execute(ctx context.Context, query string, params map[string]any) ([]Record, error)

	// ExecuteWrite runs a write query (CREATE, MERGE, SET, DELETE).
	ExecuteWrite(ctx context.Context, query string, params map[string]any) error

	// Close releases database resources.
	Close() error

	// Ping checks if the database is reachable.
	Ping(ctx context.Context) error
}
