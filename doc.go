// Package callflow compiles scripted Client/Agent dialogue into a
// conversation graph.
//
// A script is plain text, one utterance per line:
//
//	Agent: Thanks for reaching out about the Pro plan.
//	Client: I'm worried [OBJECTION: price] and [EMOTION: hesitant]
//
// Client lines may carry [EMOTION: ...], [QUESTION: ...], [OBJECTION: ...]
// and [CUE: ...] annotations; they become edge labels and are stripped from
// node labels. Lines without a speaker prefix are ignored.
//
// The resulting Graph is always a simple path from the synthetic Start node
// through every utterance in script order. Use the format package to turn it
// into a Graphviz or Mermaid description.
package callflow
