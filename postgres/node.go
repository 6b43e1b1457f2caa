package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/callflow"
)

// insertNodes writes nodes in script order within tx.
func insertNodes(ctx context.Context, tx pgx.Tx, graphID string, nodes []callflow.Node) error {
	for _, n := range nodes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO flow_nodes (graph_id, id, idx, role, label) VALUES ($1, $2, $3, $4, $5)`,
			graphID, n.ID, n.Index, string(n.Role), n.Label,
		); err != nil {
			return fmt.Errorf("callflow: insert node %s: %w", n.ID, err)
		}
	}
	return nil
}

// listNodes returns all nodes of a graph, ordered by index.
func (s *PGStore) listNodes(ctx context.Context, graphID string) ([]callflow.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, idx, role, label FROM flow_nodes WHERE graph_id = $1 ORDER BY idx`, graphID)
	if err != nil {
		return nil, fmt.Errorf("callflow: list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []callflow.Node{}
	for rows.Next() {
		var (
			n    callflow.Node
			role string
		)
		if err := rows.Scan(&n.ID, &n.Index, &role, &n.Label); err != nil {
			return nil, fmt.Errorf("callflow: scan node: %w", err)
		}
		n.Role = callflow.Role(role)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("callflow: rows nodes: %w", err)
	}

	return nodes, nil
}
