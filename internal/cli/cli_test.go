package cli_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/cli"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/config"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/domain"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.KeySourceDir, config.KeyDestDir, config.KeyFilter, "S3_ENABLED"} {
		t.Setenv(key, "")
	}
	t.Setenv(config.KeyLogLevel, "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "absent.env")))
	err := root.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func TestRootCmd(t *testing.T) {
	root := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "captcha-resize", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"resize", "serve", "publish", "filters"})
}

func TestFiltersCmd(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, "filters")
	require.NoError(t, err)
	assert.Contains(t, out, "lanczos (default)")
	for _, name := range resample.Names() {
		assert.Contains(t, out, name)
	}
}

func TestResizeCmd_PositionalArgs(t *testing.T) {
	clearEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	writePNG(t, src, "a.png", 100, 100)

	out, err := execute(t, "resize", src, dst, "--filter", "bilinear")
	require.NoError(t, err)
	assert.Contains(t, out, "resized 1 images")
	assert.Contains(t, out, "filter bilinear")
	assert.FileExists(t, filepath.Join(dst, "a.png"))
}

func TestResizeCmd_FromEnvironment(t *testing.T) {
	clearEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	writePNG(t, src, "a.png", 12, 12)
	t.Setenv(config.KeySourceDir, src)
	t.Setenv(config.KeyDestDir, dst)

	out, err := execute(t, "resize")
	require.NoError(t, err)
	assert.Contains(t, out, "filter lanczos")
	assert.FileExists(t, filepath.Join(dst, "a.png"))
}

func TestResizeCmd_MissingDirs(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "resize")
	require.ErrorIs(t, err, config.ErrMissingDir)
}

func TestResizeCmd_UnknownFilter(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "resize", t.TempDir(), t.TempDir(), "--filter", "sinc")
	require.ErrorIs(t, err, resample.ErrUnknownFilter)
}

func TestResizeCmd_DecodeFailure(t *testing.T) {
	clearEnv(t)
	src, dst := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme.md"), []byte("# hi"), 0644))

	_, err := execute(t, "resize", src, dst)

	var decodeErr *domain.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "readme.md", decodeErr.Name)
}

func TestPublishCmd_Disabled(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "publish", t.TempDir())
	require.ErrorIs(t, err, domain.ErrPublishDisabled)
}
