package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ptx/internal/config"
	"ptx/internal/domain"
)

func runnerWithCommand(argv ...string) *Runner {
	cfg := config.New()
	cfg.Command = argv
	return NewRunner(cfg)
}

func TestRunner_Classification(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		kind domain.OutcomeKind
	}{
		{
			name: "exit zero is a pass",
			argv: []string{"/bin/sh", "-c", "true"},
			kind: domain.KindSuccess,
		},
		{
			name: "nonzero exit is a failure",
			argv: []string{"/bin/sh", "-c", "exit 1"},
			kind: domain.KindFailure,
		},
		{
			name: "skip exit code is a skip",
			argv: []string{"/bin/sh", "-c", "exit 77"},
			kind: domain.KindSkipped,
		},
		{
			name: "unrunnable command is an error",
			argv: []string{"/nonexistent/ptx-test-binary"},
			kind: domain.KindError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runnerWithCommand(tt.argv...).Run(context.Background(), "suite.T.test")
			require.Equal(t, tt.kind, res.Kind)
			require.Equal(t, "suite.T.test", res.Event.ID)
			require.False(t, res.Event.Started.IsZero())
			if tt.kind != domain.KindSuccess {
				require.NotNil(t, res.Exc)
			}
		})
	}
}

func TestRunner_SkipCarriesSkipSignal(t *testing.T) {
	r := runnerWithCommand("/bin/sh", "-c", "echo requires network >&2; exit 77")
	res := r.Run(context.Background(), "suite.NetTest.test_fetch")

	require.Equal(t, domain.KindSkipped, res.Kind)
	require.True(t, domain.IsSkip(res.Cause))
	require.Equal(t, "requires network", res.Exc.Message)
}

func TestRunner_CapturesOutput(t *testing.T) {
	r := runnerWithCommand("/bin/sh", "-c", "echo out; echo err >&2")
	res := r.Run(context.Background(), "suite.T.test_output")

	require.Equal(t, domain.KindSuccess, res.Kind)
	require.Equal(t, "out\n", res.Event.Stdout)
	require.Equal(t, "err\n", res.Event.Stderr)
}

func TestRunner_AppendsTestIDAsArgument(t *testing.T) {
	r := runnerWithCommand("/bin/echo")
	res := r.Run(context.Background(), "suite.T.test_arg")

	require.Equal(t, domain.KindSuccess, res.Kind)
	require.Equal(t, "suite.T.test_arg\n", res.Event.Stdout)
}

func TestRunner_NoCommandConfigured(t *testing.T) {
	r := NewRunner(config.New())
	res := r.Run(context.Background(), "suite.T.test")
	require.Equal(t, domain.KindError, res.Kind)
}
