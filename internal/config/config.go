// Package config reads and writes packing settings as TOML.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ForeverZer0/texpack"
)

// DefaultFile is the settings file looked up in the input directory when none is given.
const DefaultFile = "texpack.toml"

// Load decodes the file at path on top of texpack.DefaultSettings. Keys that do not match a
// setting are logged as warnings when logger is non-nil.
func Load(path string, logger *log.Logger) (texpack.Settings, error) {
	settings := texpack.DefaultSettings()
	md, err := toml.DecodeFile(path, &settings)
	if err != nil {
		return settings, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 && logger != nil {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		logger.Warn("unknown config keys", "file", path, "keys", strings.Join(keys, ", "))
	}
	return settings, nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Encode returns the TOML encoding of settings.
func Encode(settings texpack.Settings) ([]byte, error) {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(settings); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Save writes settings to path, replacing any existing file.
func Save(path string, settings texpack.Settings) error {
	data, err := Encode(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
