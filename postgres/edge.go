package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/callflow"
)

// insertEdges writes edges in creation order within tx. The position in
// the slice is stored as seq so reads preserve order.
func insertEdges(ctx context.Context, tx pgx.Tx, graphID string, edges []callflow.Edge) error {
	for i, e := range edges {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flow_edges (graph_id, seq, from_node_id, to_node_id, label) VALUES ($1, $2, $3, $4, $5)`,
			graphID, i, e.From, e.To, e.Label,
		); err != nil {
			return fmt.Errorf("callflow: insert edge %s -> %s: %w", e.From, e.To, err)
		}
	}
	return nil
}

// listEdges returns all edges of a graph, ordered by seq.
func (s *PGStore) listEdges(ctx context.Context, graphID string) ([]callflow.Edge, error) {
	rows, err := s.db.Query(ctx,
		`SELECT from_node_id, to_node_id, label FROM flow_edges WHERE graph_id = $1 ORDER BY seq`, graphID)
	if err != nil {
		return nil, fmt.Errorf("callflow: list edges: %w", err)
	}
	defer rows.Close()

	edges := []callflow.Edge{}
	for rows.Next() {
		var e callflow.Edge
		if err := rows.Scan(&e.From, &e.To, &e.Label); err != nil {
			return nil, fmt.Errorf("callflow: scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("callflow: rows edges: %w", err)
	}

	return edges, nil
}
