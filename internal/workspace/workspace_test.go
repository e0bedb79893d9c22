package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corvid/internal/cache"
	"corvid/internal/config"
	"corvid/internal/errors"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<?php\n"), 0o644))
	}
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"index.php",
		"lib/a.php",
		"lib/b.inc",
		"lib/readme.md",
		".git/hooks/x.php",
		"vendor/pkg/y.php",
		"node_modules/z.php",
	)
	cfg := config.Default()
	cfg.Extensions = []string{".php", ".inc"}

	files, err := Files(cfg, []string{root, filepath.Join(root, "index.php")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "index.php"),
		filepath.Join(root, "lib", "a.php"),
		filepath.Join(root, "lib", "b.inc"),
	}, files)
}

func TestFilesKeepsExplicitFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "script")

	files, err := Files(config.Default(), []string{filepath.Join(root, "script")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "script")}, files)
}

func TestFilesMissingPath(t *testing.T) {
	_, err := Files(config.Default(), []string{filepath.Join(t.TempDir(), "gone")})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	source := []byte("<?php\n$x = ;\n")
	in := Parse("broken.php", source)

	require.NotNil(t, in.Unit)
	assert.Equal(t, "broken.php", in.Unit.Path)
	assert.Equal(t, cache.Hash(source), in.Hash)
	require.NotEmpty(t, in.Syntax)
	assert.Equal(t, errors.SyntaxError, in.Syntax[0].Kind)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.php", "b.php")
	files := []string{filepath.Join(root, "a.php"), filepath.Join(root, "b.php")}

	inputs, sources, err := Load(files)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "<?php\n", sources[files[0]])

	_, _, err = Load([]string{filepath.Join(root, "missing.php")})
	assert.Error(t, err)
}
