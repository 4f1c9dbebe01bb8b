package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Invocation is one parsed call of a command. It lives for a single dispatch.
type Invocation struct {
	// Command is the resolved handler, as stored in the registry.
	Command Command
	// Name is the canonical command name; Alias is what the user typed.
	Name  string
	Alias string

	Params Params

	// Data is set by the adapter to its context (e.g. the originating chat
	// message).
	Data any

	// Out buffers text composed across lifecycle hooks.
	Out strings.Builder
}

// Params maps argument names to converted values.
type Params struct {
	values   map[string]any
	provided map[string]bool
}

// NewParams returns an empty Params.
func NewParams() Params {
	return Params{values: make(map[string]any), provided: make(map[string]bool)}
}

// Set stores a value. explicit marks it as supplied by the user rather than
// filled from a default.
func (p *Params) Set(name string, v any, explicit bool) {
	if p.values == nil {
		*p = NewParams()
	}
	key := strings.ToLower(name)
	p.values[key] = v
	if explicit {
		p.provided[key] = true
	}
}

// Get returns the raw value stored for name.
func (p Params) Get(name string) (any, bool) {
	v, ok := p.values[strings.ToLower(name)]
	return v, ok
}

// Provided reports whether the user supplied name explicitly.
func (p Params) Provided(name string) bool {
	return p.provided[strings.ToLower(name)]
}

// Names returns every argument name that has a value.
func (p Params) Names() []string {
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	return names
}

func (p Params) String(name string) string {
	v, _ := p.Get(name)
	return cast.ToString(v)
}

func (p Params) Int(name string) int {
	v, _ := p.Get(name)
	return cast.ToInt(v)
}

func (p Params) Float(name string) float64 {
	v, _ := p.Get(name)
	return cast.ToFloat64(v)
}

func (p Params) Bool(name string) bool {
	v, _ := p.Get(name)
	return cast.ToBool(v)
}

func (p Params) Duration(name string) time.Duration {
	v, _ := p.Get(name)
	return cast.ToDuration(v)
}
