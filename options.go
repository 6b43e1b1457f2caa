package callflow

import "fmt"

// TagOrder controls the order of tags in a Client edge label.
type TagOrder string

const (
	// TagOrderLine orders tags by where their marker appears in the line.
	TagOrderLine TagOrder = "line"
	// TagOrderKind orders tags by kind: EMOTION, QUESTION, OBJECTION, CUE.
	TagOrderKind TagOrder = "kind"
)

// StripMode controls which bracketed spans are removed from node labels.
type StripMode string

const (
	// StripAll removes every [...] span.
	StripAll StripMode = "all"
	// StripRecognized removes only spans of a recognized tag kind.
	StripRecognized StripMode = "recognized"
)

// DefaultStartLabel is the label of the synthetic Start node.
const DefaultStartLabel = "Call Start"

// Options configures a Compiler. The zero value is valid and equals
// DefaultOptions.
type Options struct {
	TagOrder   TagOrder  `yaml:"tag_order" json:"tag_order,omitempty"`
	Strip      StripMode `yaml:"strip" json:"strip,omitempty"`
	StartLabel string    `yaml:"start_label" json:"start_label,omitempty"`
}

// DefaultOptions returns the options used by Build.
func DefaultOptions() Options {
	return Options{
		TagOrder:   TagOrderLine,
		Strip:      StripAll,
		StartLabel: DefaultStartLabel,
	}
}

// WithDefaults fills empty fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.TagOrder == "" {
		o.TagOrder = d.TagOrder
	}
	if o.Strip == "" {
		o.Strip = d.Strip
	}
	if o.StartLabel == "" {
		o.StartLabel = d.StartLabel
	}
	return o
}

// Validate reports unknown enum values. Empty fields are accepted.
func (o Options) Validate() error {
	switch o.TagOrder {
	case "", TagOrderLine, TagOrderKind:
	default:
		return fmt.Errorf("%w: tag order %q", ErrInvalidOptions, o.TagOrder)
	}
	switch o.Strip {
	case "", StripAll, StripRecognized:
	default:
		return fmt.Errorf("%w: strip mode %q", ErrInvalidOptions, o.Strip)
	}
	return nil
}
