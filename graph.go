package callflow

// Role classifies a node or a script line by speaker.
type Role string

const (
	RoleNone   Role = ""
	RoleStart  Role = "start"
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
)

// Prefix returns the capitalized speaker marker used in node ids and labels.
func (r Role) Prefix() string {
	switch r {
	case RoleStart:
		return "Start"
	case RoleClient:
		return "Client"
	case RoleAgent:
		return "Agent"
	}
	return ""
}

// StartID is the id of the synthetic node that precedes every utterance.
const StartID = "Start"

// Graph represents a compiled conversation: a single chain of nodes from
// the Start node to the last utterance.
// ID is empty until the graph is saved by a Store.
type Graph struct {
	ID    string `json:"id,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents the synthetic start or one utterance.
// Index is the position of the node in script order, Start being 0.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Role  Role   `json:"role"`
	Index int    `json:"index"`
}

// Edge represents a directed connection between two consecutive nodes.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Utterance is one classified dialogue line.
type Utterance struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	Tags []Tag  `json:"tags,omitempty"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}
