package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunShellDefaultsToHelp(t *testing.T) {
	var got []string
	code := runShell(func(_ context.Context, argv []string, _ io.Reader, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, nil, io.Discard, io.Discard)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"-h"}, got)
}

func TestRunShellPassesCode(t *testing.T) {
	code := runShell(func(context.Context, []string, io.Reader, io.Writer, io.Writer) int { return 3 },
		[]string{"count"}, nil, io.Discard, io.Discard)
	assert.Equal(t, 3, code)
}
