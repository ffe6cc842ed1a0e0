package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_FiltersCommand(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"captcha-resize", "filters"}
	assert.Equal(t, 0, run())
}

func TestRun_ErrorExitCode(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	t.Setenv("RESIZE_SOURCE_DIR", "")
	t.Setenv("RESIZE_DEST_DIR", "")

	os.Args = []string{"captcha-resize", "resize"}
	assert.Equal(t, 1, run())
}
