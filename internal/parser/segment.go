package parser

import (
	"strings"

	"github.com/roach88/meteor/internal/splitter"
)

// controlPrefix marks a control command segment in both grammars.
const controlPrefix = "ctl:"

// Pseudo-token keys understood by the implicit grammar only.
const (
	namespaceSwitchKey = "ns"
	contextSwitchKey   = "ctx"
)

var assignSplitConfig = splitter.Config{
	Escapes:   splitter.EscapeInQuotes,
	KeepEmpty: true,
}

// splitAssignment splits a segment at its first unquoted "=". Later "="
// characters belong to the value.
func splitAssignment(seg string) (key, value string, err error) {
	parts := splitter.Split(seg, "=", assignSplitConfig)
	if len(parts) < 2 {
		return "", "", formatErr(ErrCodeMissingAssignment, seg, "expected key=value")
	}
	key = strings.TrimSpace(parts[0])
	value = strings.Join(parts[1:], "=")
	if key == "" {
		return "", "", formatErr(ErrCodeMissingAssignment, seg, "empty key before %q", "=")
	}
	return key, value, nil
}

// decodeValue applies the quoted-value escape grammar. Quoting errors become
// format errors; unquoted values pass through.
func decodeValue(seg, value string) (string, error) {
	decoded, err := splitter.Unquote(strings.TrimSpace(value))
	if err != nil {
		return "", formatErr(ErrCodeBadQuoting, seg, "%v", err)
	}
	return decoded, nil
}

// parseControl splits a "ctl:cmd=target" segment into command and target.
func parseControl(seg string) (cmd, target string, err error) {
	body, ok := strings.CutPrefix(seg, controlPrefix)
	if !ok {
		return "", "", formatErr(ErrCodeBadControl, seg, "not a control segment")
	}
	cmd, target, found := strings.Cut(body, "=")
	cmd = strings.TrimSpace(cmd)
	if !found || cmd == "" {
		return "", "", formatErr(ErrCodeBadControl, seg, "expected ctl:command=target")
	}
	return cmd, strings.TrimSpace(target), nil
}

// isControl reports whether the segment is a control command.
func isControl(seg string) bool {
	return strings.HasPrefix(seg, controlPrefix)
}
