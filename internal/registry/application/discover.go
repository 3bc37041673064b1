package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/term"
)

// Discover walks the three category directories of fsys and registers every
// template file found directly inside them. A category directory that is
// missing or unreadable contributes no templates. A file name that is not
// valid text, or two files mapping to the same identity, abort discovery with
// registry.ErrCorpus or registry.ErrDuplicateIdentity.
func Discover(fsys fs.FS, in *term.Interner) (*registry.Registry, error) {
	reg := registry.NewRegistry(in)

	for _, category := range registry.Categories {
		dir := category.Dir()

		// The registry orders templates itself, so the enumeration order of
		// fsys does not leak into the result.
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			log.Debug(log.CatCorpus, "skipping category", "category", category, "dir", dir, "error", err.Error())
			continue
		}

		count := 0
		for _, entry := range entries {
			if entry.IsDir() || !registry.IsTemplateFile(entry.Name()) {
				continue
			}
			if !isRegularFile(fsys, path.Join(dir, entry.Name()), entry) {
				continue
			}

			id := registry.Identity{
				Name:     registry.NameFromFile(entry.Name()),
				Category: category,
			}
			if _, err := reg.Add(id); err != nil {
				log.ErrorErr(log.CatCorpus, "rejecting corpus", err, "dir", dir, "file", entry.Name())
				return nil, fmt.Errorf("discover %s: %w", dir, err)
			}
			count++
		}

		log.Debug(log.CatCorpus, "discovered category", "category", category, "dir", dir, "templates", count)
	}

	log.Info(log.CatCorpus, "discovery complete", "templates", reg.Len())
	return reg, nil
}

// DiscoverDir discovers a corpus stored on disk. dir must contain the
// "gitignore" directory.
func DiscoverDir(dir string, in *term.Interner) (*registry.Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open corpus %s: %w", dir, ErrNotDirectory)
	}
	return Discover(os.DirFS(dir), in)
}

// ErrNotDirectory is returned when a corpus path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// isRegularFile reports whether entry is a regular file, following symlinks.
func isRegularFile(fsys fs.FS, name string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && info.Mode().IsRegular()
}
