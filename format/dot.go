package format

import (
	"fmt"
	"strings"

	"github.com/meikuraledutech/callflow"
)

// DOT emits a Graphviz digraph with a top-to-bottom layout.
type DOT struct{}

func (DOT) Name() string        { return "dot" }
func (DOT) ContentType() string { return "text/vnd.graphviz; charset=utf-8" }

var dotNodeStyle = map[callflow.Role]string{
	callflow.RoleStart:  "shape=circle, color=green",
	callflow.RoleClient: "shape=box, color=orange",
	callflow.RoleAgent:  "shape=box, color=lightblue",
}

func (DOT) Format(g *callflow.Graph) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("digraph SalesFlow {\n")
	buf.WriteString("    rankdir=TB;\n")
	buf.WriteString("    node [shape=box, style=filled, color=lightblue];\n")
	buf.WriteString("    edge [fontsize=10];\n\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "    %s [label=%s", dotQuote(n.ID), dotQuote(n.Label))
		if style, ok := dotNodeStyle[n.Role]; ok {
			buf.WriteString(", " + style)
		}
		buf.WriteString("];\n")
	}

	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "    %s -> %s [label=%s];\n", dotQuote(e.From), dotQuote(e.To), dotQuote(e.Label))
	}

	buf.WriteString("}\n")
	return []byte(buf.String()), nil
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// dotQuote returns s as a double-quoted DOT ID.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
