package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS flow_graphs (
    id         TEXT PRIMARY KEY,
    script     TEXT NOT NULL DEFAULT '',
    metadata   JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS flow_nodes (
    graph_id TEXT NOT NULL REFERENCES flow_graphs(id) ON DELETE CASCADE,
    id       TEXT NOT NULL,
    idx      INTEGER NOT NULL,
    role     TEXT NOT NULL,
    label    TEXT NOT NULL,
    PRIMARY KEY (graph_id, id)
);

CREATE TABLE IF NOT EXISTS flow_edges (
    graph_id     TEXT NOT NULL,
    seq          INTEGER NOT NULL,
    from_node_id TEXT NOT NULL,
    to_node_id   TEXT NOT NULL,
    label        TEXT NOT NULL,
    PRIMARY KEY (graph_id, seq),
    FOREIGN KEY (graph_id, from_node_id) REFERENCES flow_nodes(graph_id, id) ON DELETE CASCADE,
    FOREIGN KEY (graph_id, to_node_id)   REFERENCES flow_nodes(graph_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_flow_graphs_created ON flow_graphs(created_at DESC);
`

// CreateSchema creates the flow_graphs, flow_nodes and flow_edges tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the flow_edges, flow_nodes and flow_graphs tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS flow_edges, flow_nodes, flow_graphs CASCADE;`)
	return err
}
