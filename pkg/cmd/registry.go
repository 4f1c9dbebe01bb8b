package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"
)

var (
	// ErrDuplicate is returned when a name or alias is already taken.
	ErrDuplicate = errors.New("duplicate command name or alias")
	// ErrSealed is returned when registering after the registry was sealed.
	ErrSealed = errors.New("registry is sealed")
	// ErrInvalid is returned for malformed names or schemas.
	ErrInvalid = errors.New("invalid command")
)

// Entry is a registered command with its aliases and full schema.
type Entry struct {
	Command Command
	Aliases []string
	// Arguments is the declared schema followed by ImplicitArguments.
	Arguments []Argument
}

// Registry stores commands by case-insensitive name and alias. It does not
// perform dispatch; adapters look commands up and run them with their own
// context.
//
// Registration happens at startup. After Seal the registry is read-only and
// safe for concurrent lookups without locking.
type Registry struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	entries map[string]*Entry // canonical name -> entry
	lookup  map[string]*Entry // name or alias -> entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		lookup:  make(map[string]*Entry),
	}
}

// Register adds a command under its name and the given aliases.
func (r *Registry) Register(c Command, aliases ...string) error {
	if c == nil {
		return fmt.Errorf("%w: nil command", ErrInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return fmt.Errorf("register %q: %w", c.Name(), ErrSealed)
	}

	name := strings.ToLower(c.Name())
	if err := validName(name); err != nil {
		return err
	}

	keys := []string{name}
	seen := map[string]bool{name: true}
	for _, a := range aliases {
		a = strings.ToLower(a)
		if err := validName(a); err != nil {
			return fmt.Errorf("command %q alias: %w", name, err)
		}
		if seen[a] {
			return fmt.Errorf("command %q lists %q twice: %w", name, a, ErrDuplicate)
		}
		seen[a] = true
		keys = append(keys, a)
	}

	for _, k := range keys {
		if other, ok := r.lookup[k]; ok {
			return fmt.Errorf("%q of command %q already used by %q: %w", k, name, other.Command.Name(), ErrDuplicate)
		}
	}

	args, err := schema(name, c.Arguments())
	if err != nil {
		return err
	}

	e := &Entry{Command: c, Aliases: keys[1:], Arguments: args}
	r.entries[name] = e
	for _, k := range keys {
		r.lookup[k] = e
	}
	return nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Lookup finds a command by name or alias.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	if !r.Sealed() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	e, ok := r.lookup[strings.ToLower(name)]
	return e, ok
}

// Get returns the command with the given name or alias, or nil.
func (r *Registry) Get(name string) Command {
	if e, ok := r.Lookup(name); ok {
		return e.Command
	}
	return nil
}

// All returns all registered entries, sorted by name.
func (r *Registry) All() []*Entry {
	if !r.Sealed() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	list := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Command.Name() < list[j].Command.Name()
	})
	return list
}

// Visible returns the non-hidden entries, sorted by name.
func (r *Registry) Visible() []*Entry {
	var list []*Entry
	for _, e := range r.All() {
		if !e.Command.Hidden() {
			list = append(list, e)
		}
	}
	return list
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalid)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: name %q contains whitespace", ErrInvalid, name)
	}
	return nil
}

func schema(name string, declared []Argument) ([]Argument, error) {
	implicit := ImplicitArguments()
	seen := make(map[string]bool, len(declared)+len(implicit))
	for _, a := range implicit {
		seen[a.Name] = true
	}

	out := make([]Argument, 0, len(declared)+len(implicit))
	for _, a := range declared {
		key := strings.ToLower(a.Name)
		if err := validName(key); err != nil {
			return nil, fmt.Errorf("command %q argument: %w", name, err)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: command %q declares argument %q twice or uses a reserved name", ErrInvalid, name, a.Name)
		}
		seen[key] = true
		a.Name = key
		out = append(out, a)
	}
	return append(out, implicit...), nil
}
