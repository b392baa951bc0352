package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_NoArgsPrintsUsageWithoutConfig(t *testing.T) {
	req := require.New(t)

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"jobshield"}

	// No environment is set up here. A bare invocation must print usage
	// and exit cleanly before any configuration is read.
	t.Setenv("MODEL_DIR", "")
	t.Setenv("BADGER_FILEPATH", "")
	t.Setenv("BLUGE_FILEPATH", "")

	req.NoError(run())
}
