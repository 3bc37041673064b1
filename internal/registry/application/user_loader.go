package registry

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/log"
)

// UserCorpusDir returns the default location of a user corpus:
// ~/.config/gig/corpus. Returns empty string if the home directory cannot be
// determined.
func UserCorpusDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gig", "corpus")
}

// LoadUserCorpus returns a filesystem rooted at baseDir when it holds a
// "gitignore" directory. Returns nil if the directory doesn't exist (graceful
// fallback to the built-in corpus).
func LoadUserCorpus(baseDir string) fs.FS {
	if baseDir == "" {
		return nil
	}

	info, err := os.Stat(filepath.Join(baseDir, registry.Root))
	if err != nil || !info.IsDir() {
		log.Debug(log.CatCorpus, "no user corpus", "dir", baseDir)
		return nil
	}

	log.Info(log.CatCorpus, "using user corpus", "dir", baseDir)
	return os.DirFS(baseDir)
}
