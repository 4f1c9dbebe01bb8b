package message

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentFile struct {
	name, caption, body string
	tts                 bool
}

type fakeSink struct {
	texts   []string
	tts     []bool
	files   []sentFile
	failAt  int // 1-based text send that fails; 0 never
	textErr error
}

func (f *fakeSink) SendText(_ context.Context, content string, tts bool) error {
	if f.failAt > 0 && len(f.texts)+1 == f.failAt {
		return f.textErr
	}
	f.texts = append(f.texts, content)
	f.tts = append(f.tts, tts)
	return nil
}

func (f *fakeSink) SendFile(_ context.Context, name, caption string, r io.Reader, tts bool) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.files = append(f.files, sentFile{name: name, caption: caption, body: string(body), tts: tts})
	return nil
}

func TestDeliver_ShortTextIsOneMessage(t *testing.T) {
	for _, force := range []bool{false, true} {
		sink := &fakeSink{}
		d := NewDispatcher(0)

		err := d.Deliver(context.Background(), sink, Reply{Text: "pong", ForceFile: force, TTS: true, Name: "ping"})

		require.NoError(t, err)
		assert.Equal(t, []string{"pong"}, sink.texts)
		assert.Equal(t, []bool{true}, sink.tts)
		assert.Empty(t, sink.files)
	}
}

func TestDeliver_ExactlyAtLimitIsOneMessage(t *testing.T) {
	sink := &fakeSink{}

	err := NewDispatcher(0).Deliver(context.Background(), sink, Reply{Text: strings.Repeat("a", MaxMessageLength)})

	require.NoError(t, err)
	assert.Len(t, sink.texts, 1)
}

func TestDeliver_CodeFormattedShortText(t *testing.T) {
	sink := &fakeSink{}

	err := NewDispatcher(0).Deliver(context.Background(), sink, Reply{Text: "x := 1", Code: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"```\nx := 1\n```"}, sink.texts)
}

func TestDeliver_ForceFile(t *testing.T) {
	sink := &fakeSink{}
	text := strings.Repeat("a", 5000)

	err := NewDispatcher(0).Deliver(context.Background(), sink, Reply{Text: text, Code: true, ForceFile: true, Name: "dump"})

	require.NoError(t, err)
	assert.Empty(t, sink.texts)
	require.Len(t, sink.files, 1)
	assert.Equal(t, "dump.txt", sink.files[0].name)
	assert.Equal(t, "[dump] Results:", sink.files[0].caption)
	assert.Equal(t, text, sink.files[0].body, "file carries the raw text without fences")
}

func TestDeliver_ChunksInOrderWithDelay(t *testing.T) {
	sink := &fakeSink{}
	var pauses []time.Duration
	d := &Dispatcher{Delay: 250 * time.Millisecond, sleep: func(d time.Duration) { pauses = append(pauses, d) }}

	lines := make([]string, 0, 300)
	for i := 0; i < 300; i++ {
		lines = append(lines, strings.Repeat(string(rune('a'+i%26)), 20))
	}
	text := strings.Join(lines, "\n")

	err := d.Deliver(context.Background(), sink, Reply{Text: text, Code: true})

	require.NoError(t, err)
	require.Greater(t, len(sink.texts), 1)
	assert.Len(t, pauses, len(sink.texts)-1)
	for _, p := range pauses {
		assert.Equal(t, 250*time.Millisecond, p)
	}

	var rebuilt []string
	for _, m := range sink.texts {
		assert.LessOrEqual(t, Len(m), MaxMessageLength)
		require.True(t, strings.HasPrefix(m, "```\n"))
		rebuilt = append(rebuilt, strings.TrimSuffix(strings.TrimPrefix(m, "```\n"), "\n```"))
	}
	assert.Equal(t, text, strings.Join(rebuilt, "\n"))
}

func TestDeliver_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("missing access")
	sink := &fakeSink{failAt: 2, textErr: boom}

	err := NewDispatcher(0).Deliver(context.Background(), sink, Reply{Text: strings.Repeat("b", 4500)})

	require.ErrorIs(t, err, boom)
	assert.Len(t, sink.texts, 1)
}

func TestDeliver_IgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &ctxSink{}

	err := NewDispatcher(0).Deliver(ctx, sink, Reply{Text: strings.Repeat("c", 4500)})

	require.NoError(t, err)
	assert.Equal(t, 3, sink.sends)
}

func TestDeliver_EmptyTextSendsNothing(t *testing.T) {
	sink := &fakeSink{}

	require.NoError(t, NewDispatcher(0).Deliver(context.Background(), sink, Reply{Text: ""}))
	assert.Empty(t, sink.texts)
	assert.Empty(t, sink.files)
}

func TestDeliver_WhitespaceOnlySendsNothing(t *testing.T) {
	for _, r := range []Reply{
		{Text: "  \n"},
		{Text: "\t \n ", Code: true},
		{Text: " ", ForceFile: true, Name: "ping"},
	} {
		sink := &fakeSink{}
		require.NoError(t, NewDispatcher(0).Deliver(context.Background(), sink, r))
		assert.Empty(t, sink.texts, "%q", r.Text)
		assert.Empty(t, sink.files, "%q", r.Text)
	}
}

type ctxSink struct{ sends int }

func (c *ctxSink) SendText(ctx context.Context, _ string, _ bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sends++
	return nil
}

func (c *ctxSink) SendFile(ctx context.Context, _, _ string, _ io.Reader, _ bool) error {
	return ctx.Err()
}
