// Package config reads the key = value run files and merges them with
// defaults and command-line flags into one immutable Run.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// None in a config file leaves the key at its default.
const None = "None"

// keyAliases maps historical spellings onto canonical keys.
var keyAliases = map[string]string{
	"attenuition": KeyAttenuation,
}

// Values is a flat set of raw settings keyed by canonical name.
type Values map[string]string

// CanonicalKey resolves aliases.
func CanonicalKey(key string) string {
	key = strings.TrimSpace(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// ParseFile reads key = value lines. Blank lines and lines starting with
// '#' are skipped, "None" values are dropped, unknown keys are kept (and
// later ignored by the Builder).
func ParseFile(r io.Reader) (Values, error) {
	v := make(Values)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: config line %d: missing '=' in %q", design.ErrConfiguration, line, text)
		}

		key, value = CanonicalKey(key), strings.TrimSpace(value)
		if key == "" {
			return nil, fmt.Errorf("%w: config line %d: empty key", design.ErrConfiguration, line)
		}
		if value == None {
			continue
		}
		v[key] = value
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return v, nil
}

// Load parses the config file at path.
func Load(path string) (Values, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return ParseFile(f)
}
