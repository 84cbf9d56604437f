package release

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidModule is returned for module paths that are not a relative
// subdirectory of the repository.
var ErrInvalidModule = errors.New("invalid module path")

// NormalizeModule cleans a module path to its slash-separated form without
// leading "./" or trailing "/".
func NormalizeModule(module string) (string, error) {
	if strings.TrimSpace(module) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidModule)
	}
	if filepath.IsAbs(module) {
		return "", fmt.Errorf("%w: %s must be relative", ErrInvalidModule, module)
	}

	cleaned := path.Clean(filepath.ToSlash(module))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s is outside the repository", ErrInvalidModule, module)
	}
	return cleaned, nil
}

// moduleDir returns the on-disk directory of module under root.
func moduleDir(root, module string) string {
	return filepath.Join(root, filepath.FromSlash(module))
}
