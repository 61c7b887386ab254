package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/amplifier-docs/docsync/internal/config"
)

// Neo4j implements Driver over the bolt protocol.
type Neo4j struct {
	driver neo4j.DriverWithContext
}

// Config holds connection settings.
type Config struct {
	URI      string
	Username string
	Password string
}

// DefaultConfig reads connection settings from the environment.
func DefaultConfig() Config {
	env := config.Env()
	return Config{
		URI:      env.Neo4jURI,
		Username: env.Neo4jUser,
		Password: env.Neo4jPassword,
	}
}

// NewNeo4j creates a driver. The connection is lazy; use Ping to
// verify reachability.
func NewNeo4j(cfg Config) (*Neo4j, error) {
	var auth neo4j.AuthToken
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	} else {
		auth = neo4j.NoAuth()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}
	return &Neo4j{driver: driver}, nil
}

// Connect creates a driver with environment config and verifies
// connectivity. Returns nil without error when the database is
// unreachable so callers can degrade gracefully.
func Connect(ctx context.Context) (*Neo4j, error) {
	db, err := NewNeo4j(DefaultConfig())
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil
	}
	return db, nil
}

// Execute runs a read query and returns results.
func (n *Neo4j) Execute(ctx context.Context, query string, params map[string]any) ([]Record, error) {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	var records []Record
	for result.Next(ctx) {
		rec := result.Record()
		record := make(Record)
		for _, key := range rec.Keys {
			val, _ := rec.Get(key)
			record[key] = val
		}
		records = append(records, record)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("result iteration failed: %w", err)
	}
	return records, nil
}

// ExecuteWrite runs a write query.
func (n *Neo4j) ExecuteWrite(ctx context.Context, query string, params map[string]any) error {
	session := n.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, query, params); err != nil {
		return fmt.Errorf("write query failed: %w", err)
	}
	return nil
}

// Close releases the driver.
func (n *Neo4j) Close() error {
	return n.driver.Close(context.Background())
}

// Ping checks database connectivity.
func (n *Neo4j) Ping(ctx context.Context) error {
	return n.driver.VerifyConnectivity(ctx)
}
