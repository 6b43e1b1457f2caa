package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/meikuraledutech/callflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const script = `Narrator: scene intro
Client: I'm worried [OBJECTION: price] and [EMOTION: hesitant]
Agent: Let's look at the "Pro" plan`

func TestDOT(t *testing.T) {
	out, err := DOT{}.Format(callflow.Build(script))
	require.NoError(t, err)

	want := `digraph SalesFlow {
    rankdir=TB;
    node [shape=box, style=filled, color=lightblue];
    edge [fontsize=10];

    "Start" [label="Call Start", shape=circle, color=green];
    "Client_1" [label="Client: I'm worried and", shape=box, color=orange];
    "Agent_2" [label="Agent: Let's look at the \"Pro\" plan", shape=box, color=lightblue];

    "Start" -> "Client_1" [label="Objection: price, Emotion: hesitant"];
    "Client_1" -> "Agent_2" [label="Agent Responds"];
}
`
	assert.Equal(t, want, string(out))
}

func TestDOTStartOnly(t *testing.T) {
	out, err := DOT{}.Format(callflow.Build(""))
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"Start" [label="Call Start"`)
	assert.NotContains(t, s, "->")
	assert.Equal(t, strings.Count(s, "{"), strings.Count(s, "}"))
}

func TestDOTQuote(t *testing.T) {
	assert.Equal(t, `"a\\b"`, dotQuote(`a\b`))
	assert.Equal(t, `"line\nbreak"`, dotQuote("line\nbreak"))
	assert.Equal(t, `"say \"hi\""`, dotQuote(`say "hi"`))
}

func TestMermaid(t *testing.T) {
	out, err := Mermaid{}.Format(callflow.Build(script))
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "graph TD\n"))
	assert.Contains(t, s, `Start(("Call Start"))`)
	assert.Contains(t, s, `Client_1["Client: I'm worried and"]`)
	assert.Contains(t, s, `Agent_2["Agent: Let's look at the #quot;Pro#quot; plan"]`)
	assert.Contains(t, s, `Start -->|"Objection: price, Emotion: hesitant"| Client_1`)
	assert.Contains(t, s, "class Client_1 client")
	assert.Contains(t, s, "classDef agent")
}

func TestMermaidID(t *testing.T) {
	assert.Equal(t, "Client_1", mermaidID("Client_1"))
	assert.Equal(t, "a_b_c", mermaidID("a-b c"))
}

func TestJSON(t *testing.T) {
	g := callflow.Build(script)
	out, err := JSON{}.Format(g)
	require.NoError(t, err)

	var decoded callflow.Graph
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, *g, decoded)
}

func TestLookup(t *testing.T) {
	f, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "dot", f.Name())

	f, err = Lookup("MERMAID")
	require.NoError(t, err)
	assert.Equal(t, "mermaid", f.Name())

	_, err = Lookup("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, []string{"dot", "json", "mermaid"}, Names())
}
