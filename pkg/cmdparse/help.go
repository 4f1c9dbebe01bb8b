package cmdparse

import (
	"fmt"
	"strings"

	"github.com/keshon/simplebot/pkg/cmd"
)

// Listing renders every visible command, one per line.
func (p *Parser) Listing() string {
	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, e := range p.registry.Visible() {
		fmt.Fprintf(&sb, "  %s%s", p.prefix, e.Command.Name())
		if len(e.Aliases) > 0 {
			fmt.Fprintf(&sb, " (aliases: %s)", strings.Join(e.Aliases, ", "))
		}
		if d := e.Command.Description(); d != "" {
			fmt.Fprintf(&sb, " - %s", d)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Describe renders usage, aliases and arguments of one command, hidden or
// not. It reports false when name is not registered.
func (p *Parser) Describe(name string) (string, bool) {
	e, ok := p.registry.Lookup(name)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(p.Usage(e))
	sb.WriteByte('\n')
	if d := e.Command.Description(); d != "" {
		fmt.Fprintf(&sb, "\n%s\n", d)
	}
	if len(e.Aliases) > 0 {
		fmt.Fprintf(&sb, "\nAliases: %s\n", strings.Join(e.Aliases, ", "))
	}
	sb.WriteString("\nArguments:\n")
	for _, a := range e.Arguments {
		fmt.Fprintf(&sb, "  %s (%s", a.Name, a.Type)
		if a.Required {
			sb.WriteString(", required")
		} else {
			fmt.Fprintf(&sb, ", default %v", defaultValue(a))
		}
		sb.WriteByte(')')
		if a.Description != "" {
			fmt.Fprintf(&sb, " - %s", a.Description)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), true
}

// Usage renders the one-line synopsis of a command.
func (p *Parser) Usage(e *cmd.Entry) string {
	parts := []string{p.prefix + e.Command.Name()}
	for _, a := range e.Arguments {
		if a.Required {
			parts = append(parts, "<"+a.Name+">")
		} else {
			parts = append(parts, "["+a.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}
