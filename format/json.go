package format

import (
	"encoding/json"

	"github.com/meikuraledutech/callflow"
)

// JSON emits the graph's node and edge lists as indented JSON.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (JSON) Format(g *callflow.Graph) ([]byte, error) {
	out, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
