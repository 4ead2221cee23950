package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.css")
	assert.NoError(t, os.WriteFile(tmpFile, []byte("body { color: red; }"), 0644))

	hash := computeFileHash(tmpFile)
	assert.Len(t, hash, 8)
	assert.Equal(t, hash, computeFileHash(tmpFile))

	assert.Equal(t, "", computeFileHash("non_existent_file.css"))
}

func TestInitAssetVersions(t *testing.T) {
	// Paths are relative, so run from a scratch directory holding the assets.
	wd, err := os.Getwd()
	assert.NoError(t, err)
	dir := t.TempDir()
	assert.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	assert.NoError(t, os.MkdirAll(filepath.Dir(cssAssetPath), 0755))
	assert.NoError(t, os.MkdirAll(filepath.Dir(formAssetPath), 0755))
	assert.NoError(t, os.WriteFile(cssAssetPath, []byte(".nb-page{}"), 0644))
	assert.NoError(t, os.WriteFile(formAssetPath, []byte("void 0;"), 0644))

	InitAssetVersions()

	ctx := context.Background()
	assert.NotEqual(t, "1", GetCSSVersion(ctx))
	assert.Len(t, GetCSSVersion(ctx), 8)
	assert.NotEqual(t, "1", GetFormJSVersion(ctx))
}
