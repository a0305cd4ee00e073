package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-web-downloader/internal/model"
)

// fakeRunner returns canned stdout or a canned error and records the args.
type fakeRunner struct {
	output []byte
	err    error
	args   []string
}

func (f *fakeRunner) Run(_ context.Context, args []string) ([]byte, error) {
	f.args = args
	return f.output, f.err
}

func TestInvoker_ParsesSingleJSONDocument(t *testing.T) {
	runner := &fakeRunner{
		output: []byte(`{"id":"abc123","title":"A Video","duration":125,"view_count":42}`),
	}
	invoker := NewInvoker(runner)

	record, err := invoker.Extract(context.Background(), "https://youtu.be/abc123", Strategies()[0])
	require.NoError(t, err)
	assert.Equal(t, "A Video", record.Title)
	assert.Equal(t, int64(42), record.ViewCount)
	assert.Contains(t, runner.args, "--dump-json")
}

func TestInvoker_MalformedJSONFailsWithStrategy(t *testing.T) {
	runner := &fakeRunner{output: []byte("WARNING: not json at all")}
	invoker := NewInvoker(runner)

	_, err := invoker.Extract(context.Background(), "https://youtu.be/abc", Strategies()[1])

	var extractionErr *model.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "ios", extractionErr.Strategy)
}

func TestInvoker_RunnerFailureNeverPanics(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1: ERROR: unavailable")}
	invoker := NewInvoker(runner)

	record, err := invoker.Extract(context.Background(), "https://youtu.be/abc", DefaultStrategy())
	assert.Nil(t, record)

	var extractionErr *model.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, DefaultStrategyName, extractionErr.Strategy)
}

// endlessReader produces bytes forever and counts how many were consumed.
type endlessReader struct {
	consumed int64
}

func (r *endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'x'
	}
	r.consumed += int64(len(p))
	return len(p), nil
}

func TestReadBounded_FlagsOverflowWithoutDraining(t *testing.T) {
	src := &endlessReader{}

	output, overflow, err := readBounded(src, 16)
	require.NoError(t, err)
	assert.True(t, overflow)
	assert.Nil(t, output)
	assert.LessOrEqual(t, src.consumed, int64(17), "overflow must not drain the producer")
}

func TestReadBounded_ExactLimitIsNotOverflow(t *testing.T) {
	payload := strings.Repeat("a", 16)

	output, overflow, err := readBounded(strings.NewReader(payload), 16)
	require.NoError(t, err)
	assert.False(t, overflow)
	assert.Equal(t, payload, string(output))
}

func TestCappedBuffer_DropsBeyondLimit(t *testing.T) {
	var buf cappedBuffer
	buf.limit = 8

	n, err := buf.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, 10, n, "Write must report full consumption")
	assert.Equal(t, "01234567", buf.String())

	_, _ = buf.Write([]byte("more"))
	assert.Equal(t, "01234567", buf.String())
}
