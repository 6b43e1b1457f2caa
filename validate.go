package callflow

import "fmt"

// Validate checks that g is a well-formed conversation chain: a Start
// node first, unique node ids, and exactly one edge from each node to its
// successor in node order.
func Validate(g *Graph) error {
	if g == nil || len(g.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidGraph)
	}
	if g.Nodes[0].ID != StartID || g.Nodes[0].Role != RoleStart {
		return fmt.Errorf("%w: first node is %q, want %q", ErrInvalidGraph, g.Nodes[0].ID, StartID)
	}

	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d has no id", ErrInvalidGraph, i)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvalidGraph, n.ID)
		}
		seen[n.ID] = struct{}{}
		if i > 0 && n.Role != RoleClient && n.Role != RoleAgent {
			return fmt.Errorf("%w: node %q has role %q", ErrInvalidGraph, n.ID, n.Role)
		}
	}

	if len(g.Edges) != len(g.Nodes)-1 {
		return fmt.Errorf("%w: %d edges for %d nodes", ErrInvalidGraph, len(g.Edges), len(g.Nodes))
	}
	for i, e := range g.Edges {
		from, to := g.Nodes[i].ID, g.Nodes[i+1].ID
		if e.From != from || e.To != to {
			return fmt.Errorf("%w: edge %d is %s -> %s, want %s -> %s", ErrInvalidGraph, i, e.From, e.To, from, to)
		}
	}
	return nil
}
