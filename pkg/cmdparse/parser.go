// Package cmdparse resolves raw message text into a registered command and a
// type-checked argument set, using a prefix convention:
//
//	!roll 20 rolls=3 tts=true
//
// Values bind positionally in schema order, or by name with name=value.
// Quoting follows shell rules.
package cmdparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/shlex"

	"github.com/keshon/simplebot/pkg/cmd"
)

var (
	// ErrNoPrefix means the text is not addressed to the bot.
	ErrNoPrefix = errors.New("text does not start with the command prefix")
	// ErrUnknownCommand means no registered command matches.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNoHelp means no help command was registered.
	ErrNoHelp = errors.New("no help command registered")
)

// ArgumentError reports a malformed invocation of a known command.
type ArgumentError struct {
	Command  string
	Argument string
	Err      error
}

func (e *ArgumentError) Error() string {
	if e.Argument == "" {
		return fmt.Sprintf("command %q: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q argument %q: %v", e.Command, e.Argument, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

var (
	errMissing  = errors.New("missing required argument")
	errSurplus  = errors.New("too many arguments")
	errRepeated = errors.New("argument given twice")
)

// Parser tokenizes text against a prefix and the commands of a registry.
type Parser struct {
	prefix   string
	registry *cmd.Registry
	help     string
}

// New returns a parser for prefix over registry.
func New(prefix string, registry *cmd.Registry) (*Parser, error) {
	if prefix == "" || strings.IndexFunc(prefix, unicode.IsSpace) >= 0 {
		return nil, fmt.Errorf("invalid command prefix %q", prefix)
	}
	if registry == nil {
		registry = cmd.NewRegistry()
	}
	return &Parser{prefix: prefix, registry: registry}, nil
}

// Prefix returns the command prefix.
func (p *Parser) Prefix() string { return p.prefix }

// Registry returns the registry commands are resolved against.
func (p *Parser) Registry() *cmd.Registry { return p.registry }

// Register adds a command to the underlying registry.
func (p *Parser) Register(c cmd.Command, aliases ...string) error {
	return p.registry.Register(c, aliases...)
}

// RegisterHelp registers c and designates it as the help command. Only one
// help command can exist.
func (p *Parser) RegisterHelp(c cmd.Command, aliases ...string) error {
	if p.help != "" {
		return fmt.Errorf("help command already registered as %q: %w", p.help, cmd.ErrDuplicate)
	}
	if err := p.registry.Register(c, aliases...); err != nil {
		return err
	}
	p.help = strings.ToLower(c.Name())
	return nil
}

// HelpName returns the canonical help command name, or "" if none.
func (p *Parser) HelpName() string { return p.help }

// Parse resolves text to an invocation.
func (p *Parser) Parse(text string) (*cmd.Invocation, error) {
	rest, ok := strings.CutPrefix(text, p.prefix)
	if !ok {
		return nil, ErrNoPrefix
	}
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return nil, fmt.Errorf("%w: no command name after prefix", ErrUnknownCommand)
	}

	name, argText := rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		name, argText = rest[:i], rest[i:]
	}

	entry, ok := p.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	canonical := strings.ToLower(entry.Command.Name())

	tokens, err := shlex.Split(argText)
	if err != nil {
		return nil, &ArgumentError{Command: canonical, Err: err}
	}

	params, err := bind(canonical, entry.Arguments, tokens)
	if err != nil {
		return nil, err
	}

	return &cmd.Invocation{
		Command: entry.Command,
		Name:    canonical,
		Alias:   strings.ToLower(name),
		Params:  params,
	}, nil
}

// HelpInvocation synthesizes the help call for the named command, as if the
// user had typed "<prefix><help> <name>".
func (p *Parser) HelpInvocation(name string) (*cmd.Invocation, error) {
	if p.help == "" {
		return nil, ErrNoHelp
	}
	return p.Parse(p.prefix + p.help + " " + shlexQuote(name))
}

func bind(command string, schema []cmd.Argument, tokens []string) (cmd.Params, error) {
	params := cmd.NewParams()
	byName := make(map[string]cmd.Argument, len(schema))
	for _, a := range schema {
		byName[a.Name] = a
	}

	var positional []string
	for _, tok := range tokens {
		key, raw, found := strings.Cut(tok, "=")
		arg, known := byName[strings.ToLower(key)]
		if !found || !known {
			positional = append(positional, tok)
			continue
		}
		if params.Provided(arg.Name) {
			return cmd.Params{}, &ArgumentError{Command: command, Argument: arg.Name, Err: errRepeated}
		}
		v, err := arg.Type.Convert(raw)
		if err != nil {
			return cmd.Params{}, &ArgumentError{Command: command, Argument: arg.Name, Err: err}
		}
		params.Set(arg.Name, v, true)
	}

	for _, a := range schema {
		if params.Provided(a.Name) {
			continue
		}
		if len(positional) > 0 {
			raw := positional[0]
			positional = positional[1:]
			v, err := a.Type.Convert(raw)
			if err != nil {
				return cmd.Params{}, &ArgumentError{Command: command, Argument: a.Name, Err: err}
			}
			params.Set(a.Name, v, true)
			continue
		}
		if a.Required {
			return cmd.Params{}, &ArgumentError{Command: command, Argument: a.Name, Err: errMissing}
		}
		params.Set(a.Name, defaultValue(a), false)
	}

	if len(positional) > 0 {
		return cmd.Params{}, &ArgumentError{Command: command, Err: fmt.Errorf("%w: %q", errSurplus, positional)}
	}
	return params, nil
}

func defaultValue(a cmd.Argument) any {
	if a.Default != nil {
		return a.Default
	}
	v, _ := a.Type.Convert("")
	return v
}

func shlexQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\") {
		return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
	}
	return s
}
