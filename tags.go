package callflow

import (
	"regexp"
	"sort"
	"strings"
)

// TagKind is the keyword of a recognized inline annotation.
type TagKind string

const (
	TagEmotion   TagKind = "EMOTION"
	TagQuestion  TagKind = "QUESTION"
	TagObjection TagKind = "OBJECTION"
	TagCue       TagKind = "CUE"
)

// tagTable lists every recognized kind in extraction order.
// Adding a kind is a single entry here.
var tagTable = []struct {
	kind    TagKind
	display string
}{
	{TagEmotion, "Emotion"},
	{TagQuestion, "Question"},
	{TagObjection, "Objection"},
	{TagCue, "Cue"},
}

// tagPatterns holds one compiled `[KIND: value]` matcher per tagTable entry.
var tagPatterns = func() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, len(tagTable))
	for i, t := range tagTable {
		ps[i] = regexp.MustCompile(`(?i)\[\s*` + regexp.QuoteMeta(string(t.kind)) + `\s*:([^\]]*)\]`)
	}
	return ps
}()

// TagKinds returns the recognized kinds in extraction order.
func TagKinds() []TagKind {
	kinds := make([]TagKind, len(tagTable))
	for i, t := range tagTable {
		kinds[i] = t.kind
	}
	return kinds
}

// Display returns the human-readable name of the kind, e.g. "Emotion".
func (k TagKind) Display() string {
	for _, t := range tagTable {
		if t.kind == k {
			return t.display
		}
	}
	return string(k)
}

// Tag is one annotation extracted from a Client line.
type Tag struct {
	Kind  TagKind `json:"kind"`
	Value string  `json:"value"`
}

// String renders the tag as it appears in edge labels: "Objection: price".
func (t Tag) String() string {
	return t.Kind.Display() + ": " + t.Value
}

// located is a tag with the byte offset of its marker in the line.
type located struct {
	tag Tag
	pos int
}

// extract returns the first occurrence of every recognized kind, in tagTable order.
func extract(line string) []located {
	var found []located
	for i, re := range tagPatterns {
		m := re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(line[m[2]:m[3]])
		if value == "" {
			continue
		}
		found = append(found, located{tag: Tag{Kind: tagTable[i].kind, Value: value}, pos: m[0]})
	}
	return found
}

// ExtractTags returns the tags found in line, at most one per kind, in
// kind order (EMOTION, QUESTION, OBJECTION, CUE). Matching is case-insensitive
// and unrecognized bracketed markers are ignored.
func ExtractTags(line string) []Tag {
	return extractOrdered(line, TagOrderKind)
}

func extractOrdered(line string, order TagOrder) []Tag {
	found := extract(line)
	if len(found) == 0 {
		return nil
	}
	if order == TagOrderLine {
		sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	}
	tags := make([]Tag, len(found))
	for i, l := range found {
		tags[i] = l.tag
	}
	return tags
}

// JoinTags renders tags as a comma-separated edge label.
func JoinTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
