package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdevereaux/spiderling/internal/crawler"
)

func samplePages() map[string]crawler.PageResult {
	return map[string]crawler.PageResult{
		"https://a.test/": {
			URL:       "https://a.test/",
			Raw:       "<html>a</html>",
			Headers:   []string{"A"},
			Depth:     0,
			FetchedAt: time.Unix(1700000000, 0).UTC(),
		},
	}
}

func TestStreamSinkWritesIndentedJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewStreamSink(&buf)
	require.NoError(t, s.Write(context.Background(), samplePages()))

	var decoded map[string]crawler.PageResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, samplePages(), decoded)
}

func TestFileSinkWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "crawl.json")
	s := NewFileSink(path, zap.NewNop())
	require.NoError(t, s.Write(context.Background(), samplePages()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]crawler.PageResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, samplePages(), decoded)
}

func TestFileSinkWriteFailure(t *testing.T) {
	t.Parallel()

	// The target directory path is occupied by a file, so MkdirAll fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewFileSink(filepath.Join(blocker, "crawl.json"), zap.NewNop())
	require.Error(t, s.Write(context.Background(), samplePages()))
}

func TestSelect(t *testing.T) {
	t.Parallel()

	require.IsType(t, &StreamSink{}, Select("stdout", zap.NewNop()))
	require.IsType(t, &StreamSink{}, Select("", zap.NewNop()))
	require.IsType(t, &FileSink{}, Select("/tmp/out.json", zap.NewNop()))
}
