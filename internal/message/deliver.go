package message

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultChunkDelay is the pause between two chunks of the same reply.
const DefaultChunkDelay = 250 * time.Millisecond

// Sink is the channel-side half of the gateway: somewhere text and files can
// be posted.
type Sink interface {
	SendText(ctx context.Context, content string, tts bool) error
	SendFile(ctx context.Context, name, caption string, r io.Reader, tts bool) error
}

// Reply is one candidate payload produced by a command.
type Reply struct {
	Text      string
	Code      bool
	TTS       bool
	ForceFile bool
	// Name is the command the reply belongs to, used for the attachment name
	// and caption.
	Name string
}

// FileName is the attachment name used when the reply is sent as a file.
func (r Reply) FileName() string {
	name := r.Name
	if name == "" {
		name = "output"
	}
	return name + ".txt"
}

// Caption is the text posted above the attachment.
func (r Reply) Caption() string {
	name := r.Name
	if name == "" {
		name = "output"
	}
	return fmt.Sprintf("[%s] Results:", name)
}

// Dispatcher decides how a reply reaches the channel: a single message,
// a file attachment or a paced sequence of chunks.
type Dispatcher struct {
	// Delay separates consecutive chunk sends. Zero disables pacing.
	Delay time.Duration

	sleep func(time.Duration)
}

// NewDispatcher returns a Dispatcher pacing chunks by delay.
func NewDispatcher(delay time.Duration) *Dispatcher {
	return &Dispatcher{Delay: delay}
}

// Deliver sends r to sink. Send failures are returned as-is, without retry;
// the remaining chunks of a failed sequence are dropped.
//
// Once started, the sequence is not interrupted by ctx cancellation. A blank
// reply sends nothing.
func (d *Dispatcher) Deliver(ctx context.Context, sink Sink, r Reply) error {
	if strings.TrimSpace(r.Text) == "" {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	limit := EffectiveLimit(r.Code)
	if Len(r.Text) <= limit {
		if err := sink.SendText(ctx, Format(r.Text, r.Code), r.TTS); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		return nil
	}

	if r.ForceFile {
		if err := sink.SendFile(ctx, r.FileName(), r.Caption(), strings.NewReader(r.Text), r.TTS); err != nil {
			return fmt.Errorf("send %s: %w", r.FileName(), err)
		}
		return nil
	}

	chunks := Split(r.Text, limit)
	sent := 0
	for i, chunk := range chunks {
		// Discord rejects empty messages.
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if sent > 0 {
			d.pause()
		}
		if err := sink.SendText(ctx, Format(chunk, r.Code), r.TTS); err != nil {
			return fmt.Errorf("send chunk %d/%d: %w", i+1, len(chunks), err)
		}
		sent++
	}
	return nil
}

func (d *Dispatcher) pause() {
	if d.Delay <= 0 {
		return
	}
	if d.sleep != nil {
		d.sleep(d.Delay)
		return
	}
	time.Sleep(d.Delay)
}
