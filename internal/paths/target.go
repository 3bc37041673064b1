// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// TargetName is the file gig writes to.
const TargetName = ".gitignore"

// ResolveTarget resolves the .gitignore path from user input.
//
// Input normalization:
//   - "" -> "<repo root>/.gitignore", or "./.gitignore" outside a repository
//   - "/path/to/project" (a directory) -> "/path/to/project/.gitignore"
//   - "/path/to/file" -> "/path/to/file" (written as given)
//
// The repository root is the nearest ancestor of the working directory
// holding a .git entry. For git worktrees .git is a file; its "gitdir:"
// line is not followed since the ignore file belongs to the worktree.
func ResolveTarget(path string) string {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return TargetName
		}
		if root := FindRepoRoot(cwd); root != "" {
			return filepath.Join(root, TargetName)
		}
		return filepath.Join(cwd, TargetName)
	}

	path = filepath.Clean(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, TargetName)
	}
	return path
}

// FindRepoRoot walks up from dir and returns the first directory containing
// a .git entry, or "" when none is found.
func FindRepoRoot(dir string) string {
	dir = filepath.Clean(dir)
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Display shortens path relative to the working directory for messages.
func Display(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
