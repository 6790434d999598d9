package rotfield

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join("defaults", "a.json"), ResolveOutputPath("a.json", "defaults"))
	assert.Equal(t, filepath.Join(dir, "b.json"), ResolveOutputPath(filepath.Join(dir, "b.json"), "defaults"))
	assert.Equal(t, "", ResolveOutputPath(filepath.Join(dir, "nope", "c.json"), "defaults"))
	assert.Equal(t, "", ResolveOutputPath("  ", "defaults"))
	assert.Equal(t, "fallback.json", outputPath("", "defaults", "fallback.json"))
}
