package keymap

import (
	"fmt"
	"os"

	"github.com/gerunddev/exabind/internal/log"
)

// LoadFile reads a kglobalshortcutsrc file fully into memory and parses it.
func LoadFile(path string, opts ...Option) (*KeyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shortcuts file: %w", err)
	}

	km, err := Parse(string(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug("loaded keymap", "path", path, "categories", len(km.categories), "actions", km.Len())
	return km, nil
}
