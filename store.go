package callflow

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidGraph   = errors.New("callflow: graph is not a single chain from Start")
	ErrInvalidOptions = errors.New("callflow: invalid compiler options")
	ErrGraphNotFound  = errors.New("callflow: graph not found")
)

// Record is a compiled graph together with the script it came from.
// Metadata holds free-form annotations such as the objective or the
// script framework.
type Record struct {
	Graph
	Script    string            `json:"script"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Summary is the listing form of a Record.
type Summary struct {
	ID        string            `json:"id"`
	NodeCount int               `json:"node_count"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store defines the contract for persisting and retrieving compiled graphs.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// SaveGraph validates and persists rec. An empty ID is replaced by a
	// generated one; an existing ID is overwritten.
	SaveGraph(ctx context.Context, rec *Record) (*Record, error)
	// GetGraph returns nil, nil if the graph does not exist.
	GetGraph(ctx context.Context, id string) (*Record, error)
	// DeleteGraph returns ErrGraphNotFound if the graph does not exist.
	DeleteGraph(ctx context.Context, id string) error
	// ListGraphs returns summaries, newest first.
	ListGraphs(ctx context.Context) ([]Summary, error)
}
