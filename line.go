package callflow

import "strings"

// speakers maps each dialogue role to its line marker. Order matters only
// if one marker were a prefix of another.
var speakers = []struct {
	role   Role
	marker string
}{
	{RoleClient, "Client"},
	{RoleAgent, "Agent"},
}

// Classify reports the speaker of a script line and the text after the
// "Marker:" prefix. Lines with any other shape return RoleNone.
func Classify(line string) (Role, string) {
	line = strings.TrimSpace(line)
	for _, s := range speakers {
		rest, ok := strings.CutPrefix(line, s.marker)
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimLeft(rest, " \t"), ":")
		if !ok {
			continue
		}
		return s.role, strings.TrimSpace(rest)
	}
	return RoleNone, ""
}

// splitLines splits a script on newlines, tolerating CRLF.
func splitLines(script string) []string {
	return strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n")
}
