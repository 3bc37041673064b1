package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zjrosen/gig/internal/log"
)

// Mode selects how output reaches the target file.
type Mode string

const (
	// ModeOverwrite replaces the target file.
	ModeOverwrite Mode = "overwrite"
	// ModeAppend adds sections not already present to the end of the target.
	ModeAppend Mode = "append"
)

// ErrInvalidMode is returned for an unknown write mode.
var ErrInvalidMode = errors.New("invalid write mode")

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOverwrite, ModeAppend:
		return Mode(s), nil
	case "":
		return ModeOverwrite, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidMode, s, ModeOverwrite, ModeAppend)
	}
}

// Result describes what a Plan will write.
type Result struct {
	Path     string
	Before   []byte    // current file content, nil when the file does not exist
	After    []byte    // content once written
	Written  []Section // sections that end up written
	Skipped  []Section // sections already present (append mode)
	Appended bool
}

// Bytes returns how many bytes the write adds to or places in the file.
func (r *Result) Bytes() int {
	if r.Appended {
		return len(r.After) - len(r.Before)
	}
	return len(r.After)
}

// Plan computes the file content for sections without touching the disk.
func Plan(path string, sections []Section, mode Mode, opts Options) (*Result, error) {
	before, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's target file
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res := &Result{Path: path, Before: before}

	switch mode {
	case ModeAppend:
		res.Written = Missing(before, sections)
		res.Skipped = skipped(sections, res.Written)
		res.Appended = true
		res.After = appendSections(before, Render(res.Written, opts))
	case ModeOverwrite, "":
		res.Written = sections
		res.After = Render(sections, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	return res, nil
}

// Write plans and writes sections to path.
func Write(path string, sections []Section, mode Mode, opts Options) (*Result, error) {
	res, err := Plan(path, sections, mode, opts)
	if err != nil {
		return nil, err
	}

	if res.Appended && bytes.Equal(res.Before, res.After) {
		log.Debug(log.CatRender, "nothing to append", "path", path)
		return res, nil
	}

	if err := os.WriteFile(path, res.After, 0o644); err != nil { //nolint:gosec // G306: .gitignore is meant to be world readable
		log.ErrorErr(log.CatRender, "failed to write output", err, "path", path)
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	log.Info(log.CatRender, "wrote output", "path", path, "mode", mode, "sections", len(res.Written), "bytes", res.Bytes())
	return res, nil
}

func appendSections(before, rendered []byte) []byte {
	if len(rendered) == 0 {
		return before
	}
	out := make([]byte, 0, len(before)+len(rendered)+2)
	out = append(out, before...)
	if len(before) > 0 {
		if before[len(before)-1] != '\n' {
			out = append(out, '\n')
		}
		out = append(out, '\n')
	}
	return append(out, rendered...)
}

func skipped(all, kept []Section) []Section {
	keep := make(map[string]bool, len(kept))
	for _, s := range kept {
		keep[s.Name] = true
	}
	out := make([]Section, 0)
	for _, s := range all {
		if !keep[s.Name] {
			out = append(out, s)
		}
	}
	return out
}
