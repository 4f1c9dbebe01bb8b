package bot

import (
	"context"
	"strings"

	"github.com/keshon/simplebot/internal/message"
	"github.com/keshon/simplebot/pkg/cmd"
)

// ReplyOption adjusts a reply before delivery.
type ReplyOption func(*message.Reply)

// Code sends the reply as a fenced code block.
func Code() ReplyOption {
	return func(r *message.Reply) { r.Code = true }
}

// Speak overrides text-to-speech for this reply.
func Speak(tts bool) ReplyOption {
	return func(r *message.Reply) { r.TTS = tts }
}

// Respond delivers text to the channel the invocation came from.
//
// The reply is sent as a file when it is too long and the invocation's
// output_as_text_file argument is set. Text-to-speech follows the tts
// argument when given, the command's default otherwise.
func Respond(ctx context.Context, inv *cmd.Invocation, text string, opts ...ReplyOption) error {
	m, ok := FromInvocation(inv)
	if !ok {
		return ErrNoMessage
	}

	tts := inv.Command.DefaultTTS()
	if inv.Params.Provided(cmd.ArgTTS) {
		tts = inv.Params.Bool(cmd.ArgTTS)
	}

	r := message.Reply{
		Text:      text,
		TTS:       tts,
		ForceFile: inv.Params.Bool(cmd.ArgOutputAsFile),
		Name:      inv.Name,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return m.dispatch().Deliver(ctx, m.Sink, r)
}

// RespondLines joins lines with newlines and delivers them.
func RespondLines(ctx context.Context, inv *cmd.Invocation, lines []string, opts ...ReplyOption) error {
	return Respond(ctx, inv, strings.Join(lines, "\n"), opts...)
}
