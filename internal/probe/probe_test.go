package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out  []byte
	err  error
	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestProbeDuration_FormatDuration(t *testing.T) {
	runner := &fakeRunner{out: []byte(`{
		"streams": [{"codec_type": "video", "duration": "120.5"}],
		"format": {"duration": "121.2"}
	}`)}
	p := NewFFProbe("ffprobe", runner)

	d, err := p.ProbeDuration(context.Background(), "/tmp/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, 121.2, d)

	assert.Equal(t, "ffprobe", runner.name)
	assert.Contains(t, runner.args, "/tmp/clip.mp4")
}

func TestProbeDuration_StreamFallback(t *testing.T) {
	runner := &fakeRunner{out: []byte(`{
		"streams": [
			{"codec_type": "audio", "duration": "99.9"},
			{"codec_type": "video", "duration": "120.5"}
		],
		"format": {}
	}`)}
	p := NewFFProbe("ffprobe", runner)

	d, err := p.ProbeDuration(context.Background(), "clip.mkv")
	require.NoError(t, err)
	assert.Equal(t, 120.5, d)
}

func TestProbeDuration_RunError(t *testing.T) {
	p := NewFFProbe("ffprobe", &fakeRunner{err: errors.New("exit status 1")})

	_, err := p.ProbeDuration(context.Background(), "broken.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestProbeDuration_InvalidJSON(t *testing.T) {
	p := NewFFProbe("ffprobe", &fakeRunner{out: []byte("not json")})

	_, err := p.ProbeDuration(context.Background(), "clip.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestProbeDuration_NoDurationReported(t *testing.T) {
	p := NewFFProbe("ffprobe", &fakeRunner{out: []byte(`{"streams": [], "format": {}}`)})

	_, err := p.ProbeDuration(context.Background(), "clip.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)
}
