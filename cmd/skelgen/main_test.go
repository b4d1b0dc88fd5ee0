package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="40"><path d="M0 0h120v40H0z"/></svg>`

func TestRenderDefaults(t *testing.T) {
	out, err := run(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, `import ContentLoader from "react-content-loader"`)
	assert.Contains(t, out, `viewBox="0 0 400 160"`)
}

func TestRenderFlags(t *testing.T) {
	out, err := run(t, "render", "--preset", "code", "--mode", "svg", "--bg", "#ABC", "--rtl", "--speed", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `viewBox="0 0 340 84"`)
	assert.Contains(t, out, `stop-color="#abc"`)
	assert.Contains(t, out, `dur="3s"`)
	assert.Contains(t, out, "scaleX(-1)")
}

func TestRenderLiveAndNoImports(t *testing.T) {
	out, err := run(t, "render", "--live")
	require.NoError(t, err)
	assert.Contains(t, out, "render(<MyLoader />)")

	out, err = run(t, "render", "--no-imports", "--name", "CardLoader")
	require.NoError(t, err)
	assert.NotContains(t, out, "import ")
	assert.Contains(t, out, "export default CardLoader")
}

func TestRenderRejectsBadFlags(t *testing.T) {
	_, err := run(t, "render", "--mode", "svelte")
	assert.Error(t, err)
	_, err = run(t, "render", "--bg", "navy")
	assert.Error(t, err)
	_, err = run(t, "render", "--width", "-10")
	assert.Error(t, err)
	_, err = run(t, "render", "--width", "NaN")
	assert.Error(t, err)
	_, err = run(t, "render", "--speed", "+Inf")
	assert.Error(t, err)
	_, err = run(t, "render", "--preset", "none")
	assert.Error(t, err)
}

func TestImportToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "loader.svg")
	dst := filepath.Join(dir, "Loader.vue")
	require.NoError(t, os.WriteFile(src, []byte(sampleSVG), 0o644))

	_, err := run(t, "import", src, "--mode", "vue", "--out", dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), `viewBox="0 0 120 40"`)
	assert.Contains(t, string(data), `<path d="M0 0h120v40H0z" />`)
}

func TestImportMalformed(t *testing.T) {
	src := filepath.Join(t.TempDir(), "broken.svg")
	require.NoError(t, os.WriteFile(src, []byte("<svg><path"), 0o644))

	_, err := run(t, "import", src)
	assert.Error(t, err)
}

func TestPresetsList(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "facebook")
	assert.Contains(t, out, "400x460")
}

func TestWatchRegenerates(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "loader.svg")
	dst := filepath.Join(dir, "loader.jsx")
	require.NoError(t, os.WriteFile(src, []byte(sampleSVG), 0o644))

	cmd := &cobra.Command{Use: "watch"}
	flags := &outputFlags{}
	flags.register(cmd)
	require.NoError(t, cmd.Flags().Set("out", dst))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, cmd, flags, src) }()

	readOut := func() string {
		data, _ := os.ReadFile(dst)
		return string(data)
	}
	require.Eventually(t, func() bool {
		return strings.Contains(readOut(), `viewBox="0 0 120 40"`)
	}, 2*time.Second, 20*time.Millisecond)

	// Даём watcher подписаться до изменения файла.
	time.Sleep(100 * time.Millisecond)
	updated := strings.Replace(sampleSVG, `width="120"`, `width="240"`, 1)
	require.NoError(t, os.WriteFile(src, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(readOut(), `viewBox="0 0 240 40"`)
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}
