package format

import (
	"fmt"
	"strings"

	"github.com/meikuraledutech/callflow"
)

// Mermaid emits a top-down Mermaid flowchart.
type Mermaid struct{}

func (Mermaid) Name() string        { return "mermaid" }
func (Mermaid) ContentType() string { return "text/plain; charset=utf-8" }

func (Mermaid) Format(g *callflow.Graph) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("graph TD\n")

	classes := make(map[callflow.Role][]string)
	for _, n := range g.Nodes {
		id := mermaidID(n.ID)
		if n.Role == callflow.RoleStart {
			fmt.Fprintf(&buf, "    %s((%s))\n", id, mermaidQuote(n.Label))
		} else {
			fmt.Fprintf(&buf, "    %s[%s]\n", id, mermaidQuote(n.Label))
		}
		classes[n.Role] = append(classes[n.Role], id)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "    %s -->|%s| %s\n", mermaidID(e.From), mermaidQuote(e.Label), mermaidID(e.To))
	}

	buf.WriteString("\n")
	buf.WriteString("    classDef start fill:#90EE90,stroke:#228B22\n")
	buf.WriteString("    classDef client fill:#FFD580,stroke:#FFA500\n")
	buf.WriteString("    classDef agent fill:#ADD8E6,stroke:#4682B4\n")

	for _, role := range []callflow.Role{callflow.RoleStart, callflow.RoleClient, callflow.RoleAgent} {
		if ids := classes[role]; len(ids) > 0 {
			fmt.Fprintf(&buf, "    class %s %s\n", strings.Join(ids, ","), role)
		}
	}

	return []byte(buf.String()), nil
}

// mermaidID keeps ids to the characters Mermaid accepts unquoted.
func mermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, id)
}

var mermaidEscaper = strings.NewReplacer(
	`"`, "#quot;",
	"\r\n", " ",
	"\n", " ",
)

func mermaidQuote(s string) string {
	return `"` + mermaidEscaper.Replace(s) + `"`
}
