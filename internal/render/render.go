// Package render concatenates template bodies into a .gitignore file.
package render

import (
	"bytes"
	"fmt"
	"strings"
)

// Section is one template body to emit.
type Section struct {
	Name string
	Body []byte
}

// Options controls how sections are joined.
type Options struct {
	// Headers wraps each section in a "### Name ###" marker line.
	Headers bool
}

// Header returns the marker line written before a section.
func Header(name string) string {
	return fmt.Sprintf("### %s ###", name)
}

// Render joins sections, separated by a blank line. Every body is
// terminated with a newline.
func Render(sections []Section, opts Options) []byte {
	var buf bytes.Buffer
	for i, s := range sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if opts.Headers {
			buf.WriteString(Header(s.Name))
			buf.WriteByte('\n')
		}
		buf.Write(s.Body)
		if len(s.Body) > 0 && s.Body[len(s.Body)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// Present returns the names whose header already appears in existing.
func Present(existing []byte, sections []Section) map[string]bool {
	found := make(map[string]bool)
	if len(existing) == 0 {
		return found
	}
	lines := make(map[string]bool)
	for _, line := range strings.Split(string(existing), "\n") {
		lines[strings.TrimSpace(line)] = true
	}
	for _, s := range sections {
		if lines[Header(s.Name)] {
			found[s.Name] = true
		}
	}
	return found
}

// Missing drops sections whose header already appears in existing.
func Missing(existing []byte, sections []Section) []Section {
	present := Present(existing, sections)
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if !present[s.Name] {
			out = append(out, s)
		}
	}
	return out
}
