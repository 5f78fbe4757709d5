package template

import "strings"

// Render substitutes {{token}} markers in tmpl with values from vars in a
// single left-to-right pass. Tokens present in vars are replaced with their
// value (which may be empty); tokens absent from vars are left as literal
// text. Replacement values are never rescanned, so a value containing a
// token-like substring cannot trigger double substitution.
func Render(tmpl string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		open := strings.Index(tmpl[i:], "{{")
		if open < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		open += i
		b.WriteString(tmpl[i:open])

		close := strings.Index(tmpl[open+2:], "}}")
		if close < 0 {
			// Unterminated marker, keep the rest verbatim
			b.WriteString(tmpl[open:])
			break
		}
		close += open + 2

		name := strings.TrimSpace(tmpl[open+2 : close])
		if value, ok := vars[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(tmpl[open : close+2])
		}
		i = close + 2
	}

	return b.String()
}
