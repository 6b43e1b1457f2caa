package callflow

import "strconv"

// Default edge labels.
const (
	ClientEdgeLabel = "Client speaks"
	AgentEdgeLabel  = "Agent Responds"
)

// Compiler turns dialogue scripts into conversation graphs.
// A Compiler is immutable and safe for concurrent use.
type Compiler struct {
	opts      Options
	sanitizer Sanitizer
}

// NewCompiler validates opts and returns a Compiler. Empty fields take
// their DefaultOptions value.
func NewCompiler(opts Options) (*Compiler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()
	return &Compiler{opts: opts, sanitizer: NewSanitizer(opts.Strip)}, nil
}

var defaultCompiler, _ = NewCompiler(DefaultOptions())

// Build compiles script with DefaultOptions.
func Build(script string) *Graph {
	return defaultCompiler.Compile(script)
}

// ParseScript classifies script with DefaultOptions.
func ParseScript(script string) []Utterance {
	return defaultCompiler.Parse(script)
}

// Options returns the effective options of c.
func (c *Compiler) Options() Options {
	return c.opts
}

// Parse classifies every line of script and returns the dialogue lines
// as utterances, in order. Other lines are dropped.
func (c *Compiler) Parse(script string) []Utterance {
	var out []Utterance
	for _, line := range splitLines(script) {
		role, rest := Classify(line)
		if role == RoleNone {
			continue
		}
		u := Utterance{Role: role, Text: c.sanitizer.Sanitize(role, rest)}
		if role == RoleClient {
			u.Tags = extractOrdered(rest, c.opts.TagOrder)
		}
		out = append(out, u)
	}
	return out
}

// Compile parses script and folds it into a Graph.
func (c *Compiler) Compile(script string) *Graph {
	return c.Fold(c.Parse(script))
}

// Fold builds the chain Start -> u[0] -> u[1] -> ... from utterances.
func (c *Compiler) Fold(utterances []Utterance) *Graph {
	acc := chain{
		graph: &Graph{
			Nodes: make([]Node, 0, len(utterances)+1),
			Edges: make([]Edge, 0, len(utterances)),
		},
		tail: StartID,
	}
	acc.graph.Nodes = append(acc.graph.Nodes, Node{
		ID:    StartID,
		Label: c.opts.StartLabel,
		Role:  RoleStart,
	})
	for _, u := range utterances {
		if u.Role != RoleClient && u.Role != RoleAgent {
			continue
		}
		acc = acc.extend(u)
	}
	return acc.graph
}

// chain is the fold accumulator: the graph so far, the id of its last
// node and the utterance counter.
type chain struct {
	graph   *Graph
	tail    string
	counter int
}

func (ch chain) extend(u Utterance) chain {
	ch.counter++
	id := u.Role.Prefix() + "_" + strconv.Itoa(ch.counter)

	label := AgentEdgeLabel
	if u.Role == RoleClient {
		label = ClientEdgeLabel
		if len(u.Tags) > 0 {
			label = JoinTags(u.Tags)
		}
	}

	ch.graph.Nodes = append(ch.graph.Nodes, Node{
		ID:    id,
		Label: u.Role.Prefix() + ": " + u.Text,
		Role:  u.Role,
		Index: ch.counter,
	})
	ch.graph.Edges = append(ch.graph.Edges, Edge{From: ch.tail, To: id, Label: label})
	ch.tail = id
	return ch
}
