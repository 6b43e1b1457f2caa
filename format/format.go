// Package format serializes a callflow.Graph into textual descriptions:
// Graphviz DOT for rendering, Mermaid for markdown embedding, and JSON.
package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/meikuraledutech/callflow"
)

var ErrUnknownFormat = errors.New("format: unknown format")

// Formatter renders a graph. Formatters never alter labels.
type Formatter interface {
	Name() string
	ContentType() string
	Format(g *callflow.Graph) ([]byte, error)
}

// Default is the format used when none is requested.
const Default = "dot"

var registry = map[string]Formatter{
	"dot":     DOT{},
	"mermaid": Mermaid{},
	"json":    JSON{},
}

// Lookup returns the formatter registered under name. An empty name
// selects Default.
func Lookup(name string) (Formatter, error) {
	if name == "" {
		name = Default
	}
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (use %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered formats, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
