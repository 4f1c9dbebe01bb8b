package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// ArgType is the declared type of an argument.
type ArgType int

const (
	String ArgType = iota
	Int
	Float
	Bool
	Duration
)

func (t ArgType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Duration:
		return "duration"
	default:
		return fmt.Sprintf("ArgType(%d)", int(t))
	}
}

// Convert turns raw user text into a value of type t.
func (t ArgType) Convert(raw string) (any, error) {
	switch t {
	case String:
		return raw, nil
	case Int:
		return cast.ToIntE(raw)
	case Float:
		return cast.ToFloat64E(raw)
	case Bool:
		return cast.ToBoolE(raw)
	case Duration:
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return time.Duration(0), err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported argument type %v", t)
	}
}

// Argument is one entry of a command's ordered argument schema.
type Argument struct {
	Name        string
	Description string
	Type        ArgType
	Required    bool
	Default     any
}

// Names of the arguments appended to every command's schema.
const (
	ArgOutputAsFile = "output_as_text_file"
	ArgTTS          = "tts"
)

// ImplicitArguments are appended to every registered command, letting any
// output be delivered as a file or spoken without the command handling it.
func ImplicitArguments() []Argument {
	return []Argument{
		{
			Name:        ArgOutputAsFile,
			Description: "Whether to send the whole response as an attached text file when it exceeds the max message length.",
			Type:        Bool,
			Default:     true,
		},
		{
			Name:        ArgTTS,
			Description: "Whether to use TTS to speak the message.",
			Type:        Bool,
			Default:     false,
		},
	}
}
