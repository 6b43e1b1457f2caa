package callflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		wantRole Role
		wantRest string
	}{
		{"Client: Hello", RoleClient, "Hello"},
		{"Agent: Hi there", RoleAgent, "Hi there"},
		{"   Client:   padded   ", RoleClient, "padded"},
		{"Agent : spaced separator", RoleAgent, "spaced separator"},
		{"Agent:", RoleAgent, ""},
		{"Narrator: scene intro", RoleNone, ""},
		{"Clientele: not a speaker", RoleNone, ""},
		{"client: lowercase", RoleNone, ""},
		{"Client said hello", RoleNone, ""},
		{"", RoleNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			role, rest := Classify(tt.line)
			assert.Equal(t, tt.wantRole, role)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		mode StripMode
		role Role
		in   string
		want string
	}{
		{"strips tags and collapses spaces", StripAll, RoleClient, "I'm worried [OBJECTION: price] and [EMOTION: hesitant]", "I'm worried and"},
		{"strips unknown brackets", StripAll, RoleClient, "Sure [TONE: dry] thing", "Sure thing"},
		{"client fallback", StripAll, RoleClient, "[EMOTION: upset]", ClientFallbackText},
		{"agent fallback", StripAll, RoleAgent, "  ", AgentFallbackText},
		{"recognized mode keeps unknown", StripRecognized, RoleClient, "Sure [TONE: dry] [CUE: ready]", "Sure [TONE: dry]"},
		{"unclosed bracket kept", StripAll, RoleAgent, "Price is [about 10", "Price is [about 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSanitizer(tt.mode).Sanitize(tt.role, tt.in))
		})
	}
}

func TestSanitizeZeroValue(t *testing.T) {
	var s Sanitizer
	assert.Equal(t, "ok", s.Sanitize(RoleAgent, "ok [x]"))
	assert.Equal(t, "ok", Sanitize(RoleAgent, "[x] ok"))
}
