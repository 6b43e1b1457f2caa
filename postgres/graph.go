package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/callflow"
)

// SaveGraph saves a full graph (nodes + edges) in one transaction.
// A record without an ID gets an auto-generated UUID; an existing ID is
// replaced. The graph must pass callflow.Validate.
// Returns the record with ID and CreatedAt filled in.
func (s *PGStore) SaveGraph(ctx context.Context, rec *callflow.Record) (*callflow.Record, error) {
	if err := callflow.Validate(&rec.Graph); err != nil {
		return nil, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	meta := json.RawMessage("{}")
	if rec.Metadata != nil {
		b, err := json.Marshal(rec.Metadata)
		if err != nil {
			return nil, fmt.Errorf("callflow: encode metadata: %w", err)
		}
		meta = b
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("callflow: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Replace semantics: nodes and edges cascade from the graph row.
	if _, err := tx.Exec(ctx, `DELETE FROM flow_graphs WHERE id = $1`, rec.ID); err != nil {
		return nil, fmt.Errorf("callflow: delete graph: %w", err)
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO flow_graphs (id, script, metadata) VALUES ($1, $2, $3) RETURNING created_at`,
		rec.ID, rec.Script, meta,
	).Scan(&rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("callflow: insert graph: %w", err)
	}

	if err := insertNodes(ctx, tx, rec.ID, rec.Nodes); err != nil {
		return nil, err
	}
	if err := insertEdges(ctx, tx, rec.ID, rec.Edges); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("callflow: commit: %w", err)
	}

	return rec, nil
}

// GetGraph retrieves a full graph (nodes + edges) by its ID.
// Returns nil, nil if the graph doesn't exist.
func (s *PGStore) GetGraph(ctx context.Context, id string) (*callflow.Record, error) {
	rec := &callflow.Record{Graph: callflow.Graph{ID: id}}

	var meta json.RawMessage
	err := s.db.QueryRow(ctx,
		`SELECT script, metadata, created_at FROM flow_graphs WHERE id = $1`, id,
	).Scan(&rec.Script, &meta, &rec.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("callflow: get graph: %w", err)
	}
	if err := json.Unmarshal(meta, &rec.Metadata); err != nil {
		return nil, fmt.Errorf("callflow: decode metadata: %w", err)
	}
	if len(rec.Metadata) == 0 {
		rec.Metadata = nil
	}

	if rec.Nodes, err = s.listNodes(ctx, id); err != nil {
		return nil, err
	}
	if rec.Edges, err = s.listEdges(ctx, id); err != nil {
		return nil, err
	}

	return rec, nil
}

// DeleteGraph removes a graph with its nodes and edges.
// Returns ErrGraphNotFound if the graph doesn't exist.
func (s *PGStore) DeleteGraph(ctx context.Context, id string) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM flow_graphs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("callflow: delete graph: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return callflow.ErrGraphNotFound
	}
	return nil
}

// ListGraphs returns a summary of every stored graph, newest first.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListGraphs(ctx context.Context) ([]callflow.Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id, g.metadata, g.created_at, COUNT(n.id)
		FROM flow_graphs g
		LEFT JOIN flow_nodes n ON n.graph_id = g.id
		GROUP BY g.id
		ORDER BY g.created_at DESC, g.id`)
	if err != nil {
		return nil, fmt.Errorf("callflow: list graphs: %w", err)
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (callflow.Summary, error) {
		var (
			sum  callflow.Summary
			meta json.RawMessage
		)
		if err := row.Scan(&sum.ID, &meta, &sum.CreatedAt, &sum.NodeCount); err != nil {
			return sum, err
		}
		if err := json.Unmarshal(meta, &sum.Metadata); err != nil {
			return sum, err
		}
		if len(sum.Metadata) == 0 {
			sum.Metadata = nil
		}
		return sum, nil
	})
	if err != nil {
		return nil, fmt.Errorf("callflow: scan graphs: %w", err)
	}
	if summaries == nil {
		summaries = []callflow.Summary{}
	}
	return summaries, nil
}
