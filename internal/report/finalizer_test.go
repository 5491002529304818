package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ptx/internal/collector"
	"ptx/internal/domain"
	"ptx/internal/store"
)

func TestFinalizeWritesCompleteDocument(t *testing.T) {
	srv, err := store.Listen(store.SocketPath(), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer srv.Close()

	require.NoError(t, srv.Append(`<testcase classname="a" name="t1" time="0.001" started="x" ended="x"></testcase>`))
	require.NoError(t, srv.Increment(domain.CounterPasses, 1))

	path := filepath.Join(t.TempDir(), "xunit.xml")
	var status bytes.Buffer
	f := NewFinalizer(srv, "ptx", 2, &status)
	require.NoError(t, f.Finalize(path, "UTF-8"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.True(t, strings.HasPrefix(text, `<?xml version="1.0" encoding="UTF-8"?>`))
	require.Contains(t, text, `<testsuite name="ptx" tests="1" errors="0" failures="0" skip="0">`)
	require.True(t, strings.HasSuffix(text, "</testsuite>"))

	// Verbose echo
	require.Contains(t, status.String(), strings.Repeat("-", 70))
	require.Contains(t, status.String(), "XML: "+path)
}

func TestFinalizeQuietBelowVerbosityThreshold(t *testing.T) {
	srv, err := store.Listen(store.SocketPath(), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "xunit.xml")
	var status bytes.Buffer
	f := NewFinalizer(srv, "ptx", 1, &status)
	require.NoError(t, f.Finalize(path, "UTF-8"))
	require.Empty(t, status.String())
}

func TestFinalizePropagatesWriteFailure(t *testing.T) {
	srv, err := store.Listen(store.SocketPath(), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer srv.Close()

	f := NewFinalizer(srv, "ptx", 0, nil)
	err = f.Finalize(filepath.Join(t.TempDir(), "missing", "\x00bad", "xunit.xml"), "UTF-8")
	require.Error(t, err)
}

// Three tests across concurrent collectors: one pass, one failure with a
// multi-line traceback, one skip signal.
func TestEndToEndThreeTests(t *testing.T) {
	srv, err := store.Listen(store.SocketPath(), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer srv.Close()

	run := func(fn func(c *collector.Collector) error) func() {
		return func() {
			client, err := store.Dial(srv.Addr())
			if err != nil {
				t.Error(err)
				return
			}
			defer client.Close()
			if err := fn(collector.New(client)); err != nil {
				t.Error(err)
			}
		}
	}

	started := time.Now()
	jobs := []func(){
		run(func(c *collector.Collector) error {
			return c.OnSuccess(collector.Event{ID: "suite.MathTest.test_add", Started: started.Add(-10 * time.Millisecond)})
		}),
		run(func(c *collector.Collector) error {
			return c.OnFailure(
				collector.Event{ID: "suite.MathTest.test_divide", Started: started},
				domain.ExceptionInfo{Type: "AssertionError", Message: "boom", Traceback: "line1\nline2"},
			)
		}),
		run(func(c *collector.Collector) error {
			return c.OnError(
				collector.Event{ID: "suite.NetTest.test_fetch", Started: started},
				&domain.SkipError{Reason: "no network"},
				domain.ExceptionInfo{Type: "SkipError", Message: "no network"},
			)
		}),
	}

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job func()) {
			defer wg.Done()
			job()
		}(job)
	}
	wg.Wait()

	path := filepath.Join(t.TempDir(), "xunit.xml")
	require.NoError(t, NewFinalizer(srv, "ptx", 0, nil).Finalize(path, "UTF-8"))

	suite, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, suite.Tests)
	require.Equal(t, 0, suite.Errors)
	require.Equal(t, 1, suite.Failures)
	require.Equal(t, 1, suite.Skip)
	require.Len(t, suite.Cases, 3)

	byID := make(map[string]Case)
	for _, c := range suite.Cases {
		byID[c.ID()] = c
	}

	failing, ok := byID["suite.MathTest.test_divide"]
	require.True(t, ok)
	require.NotNil(t, failing.Failure)
	require.Equal(t, "AssertionError", failing.Failure.Type)
	require.Equal(t, "boom", failing.Failure.Message)
	require.Contains(t, failing.Failure.Text, "line1\nline2")

	skipped, ok := byID["suite.NetTest.test_fetch"]
	require.True(t, ok)
	require.NotNil(t, skipped.Skipped)
	require.Nil(t, skipped.Error)
	require.Nil(t, skipped.Failure)

	passing, ok := byID["suite.MathTest.test_add"]
	require.True(t, ok)
	require.Nil(t, passing.Failure)
	require.Nil(t, passing.Error)
}
