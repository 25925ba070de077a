// Package tmplrender implements minimal mustache-style "{{name}}" placeholder
// substitution.
//
// The harness renders two kinds of text that must survive literal braces
// elsewhere in the input unharmed: the base dockerfile's agent_installation
// and task_installation placeholders, and an agent's command_template's
// single task_instructions placeholder. text/template would work, but its
// escaping and action-parsing rules are built for executing logic, not for
// single-pass literal substitution, so a stray "{{" in task instructions
// (e.g. example JSON in a prompt) can trip its parser. A plain string
// replace on "{{key}}" has no such failure mode: every occurrence of a
// literal key is substituted and anything else passes through untouched.
package tmplrender

import "strings"

// Render replaces every occurrence of "{{key}}" in tmpl with its value from
// values. Keys not present in values are left untouched (not blanked out),
// so that a partially-known template can be rendered in stages if ever
// needed. Whitespace inside the braces ("{{ key }}") is tolerated.
func Render(tmpl string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start
		// Use the "{{" nearest to the "}}", so a stray "{{" earlier in the
		// text passes through literally instead of hiding a real placeholder.
		start += strings.LastIndex(rest[start:end], "{{")

		b.WriteString(rest[:start])
		key := strings.TrimSpace(rest[start+2 : end])
		if val, ok := values[key]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(rest[start : end+2])
		}
		rest = rest[end+2:]
	}

	return b.String()
}

// RenderOne is a convenience for the common single-placeholder case, such as
// an agent's command_template with only "task_instructions".
func RenderOne(tmpl, key, value string) string {
	return Render(tmpl, map[string]string{key: value})
}
