package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/linkstats/internal/cli"
	"github.com/rshade/linkstats/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "linkstats", root.Use)
	})
}

func TestRun(t *testing.T) {
	t.Setenv("LINKSTATS_HOME", t.TempDir())

	t.Run("help succeeds", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"--help"}, &stderr))
		assert.Empty(t, stderr.String())
	})

	t.Run("errors exit 1 with message", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"profile", "abc"}, &stderr))
		assert.Contains(t, stderr.String(), "Error: profile id must be >= 1")
	})
}

func TestExitCode(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
		want int
	}{
		{name: "nil error returns 0", ctx: context.Background(), err: nil, want: 0},
		{name: "generic error returns 1", ctx: context.Background(), err: errors.New("boom"), want: 1},
		{
			name: "interrupt returns 130",
			ctx:  canceled,
			err:  fmt.Errorf("loading dashboard: %w", context.Canceled),
			want: exitInterrupted,
		},
		{
			name: "canceled without interrupt returns 1",
			ctx:  context.Background(),
			err:  context.Canceled,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.ctx, tt.err))
		})
	}
}
