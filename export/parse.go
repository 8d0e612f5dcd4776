package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header is the parsed content of a generated config header.
type Header struct {
	Defines map[string]string
	Externs []string
}

// Int returns a #define as an integer.
func (h Header) Int(name string) (int, error) {
	v, ok := h.Defines[name]
	if !ok {
		return 0, fmt.Errorf("export: %s not defined", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("export: %s = %q: %w", name, v, err)
	}
	return n, nil
}

// ParseHeader reads the #define and extern lines of a config header.
func ParseHeader(r io.Reader) (Header, error) {
	h := Header{Defines: make(map[string]string)}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if code, _, ok := strings.Cut(line, "//"); ok {
			line = strings.TrimSpace(code)
		}

		switch {
		case strings.HasPrefix(line, "#define "):
			fields := strings.Fields(line)
			if len(fields) >= 3 {
				h.Defines[fields[1]] = fields[2]
			}
		case strings.HasPrefix(line, "extern "):
			h.Externs = append(h.Externs, strings.TrimSuffix(line, ";"))
		}
	}
	if err := sc.Err(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// CountArrayEntries counts the initializer lines of the named array in a
// generated source file: one line per value, or one per row for SOS arrays.
func CountArrayEntries(r io.Reader, name string) (int, error) {
	sc := bufio.NewScanner(r)
	prefix := "filter_coeff_t " + name + "["

	inside, found := false, false
	count := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case !inside && strings.HasPrefix(line, prefix):
			inside, found = true, true
		case inside && line == "};":
			inside = false
		case inside && line != "":
			count++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("export: array %s not found", name)
	}
	if inside {
		return 0, fmt.Errorf("export: array %s is not terminated", name)
	}
	return count, nil
}
