package main

import (
	"bytes"
	"testing"

	"conway/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHelpExitsCleanly(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-h"}))
	assert.Contains(t, out.String(), "Conway's Game of Life")
}

func TestRunRejectsBadFlags(t *testing.T) {
	err := run(&bytes.Buffer{}, []string{"-size", "-1"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
