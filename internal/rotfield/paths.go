package rotfield

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveOutputPath checks an output file name. A bare file name is placed
// in defaultDir. A path whose parent directory does not exist resolves to
// "" so the caller can fall back to its default file. The file itself need
// not exist.
func ResolveOutputPath(name, defaultDir string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if !strings.ContainsAny(name, `/\`) {
		return filepath.Join(defaultDir, name)
	}
	dir := filepath.Dir(filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return ""
	}
	return filepath.Clean(name)
}

// outputPath resolves name, falling back to fallback when it cannot be used.
func outputPath(name, defaultDir, fallback string) string {
	if p := ResolveOutputPath(name, defaultDir); p != "" {
		return p
	}
	return fallback
}
