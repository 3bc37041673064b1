package registry

import (
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/gig/internal/domain/registry"
	"github.com/zjrosen/gig/internal/term"
	"github.com/zjrosen/gig/internal/templates"
)

// createTestFS creates a MapFS with templates in every category plus noise
// that discovery must ignore.
func createTestFS() fstest.MapFS {
	return fstest.MapFS{
		"gitignore/Rust.gitignore":                    &fstest.MapFile{Data: []byte("target/\n")},
		"gitignore/Node.gitignore":                    &fstest.MapFile{Data: []byte("node_modules/\n")},
		"gitignore/README.md":                         &fstest.MapFile{Data: []byte("# corpus\n")},
		"gitignore/.gitignore":                        &fstest.MapFile{Data: []byte("*.swp\n")},
		"gitignore/community/Yeoman.gitignore":        &fstest.MapFile{Data: []byte("bower_components/\n")},
		"gitignore/community/Nested/Deep.gitignore":   &fstest.MapFile{Data: []byte("deep\n")},
		"gitignore/Global/macOS.gitignore":            &fstest.MapFile{Data: []byte(".DS_Store\n")},
		"gitignore/Global/VisualStudioCode.gitignore": &fstest.MapFile{Data: []byte(".vscode/*\n")},
	}
}

func identities(reg *registry.Registry) []registry.Identity {
	ids := make([]registry.Identity, 0, reg.Len())
	for _, tmpl := range reg.List() {
		ids = append(ids, tmpl.Identity())
	}
	return ids
}

func TestDiscover(t *testing.T) {
	reg, err := Discover(createTestFS(), term.New())

	require.NoError(t, err)
	require.Equal(t, []registry.Identity{
		{Name: "Node", Category: registry.CategoryPrimary},
		{Name: "Rust", Category: registry.CategoryPrimary},
		{Name: "Yeoman", Category: registry.CategoryCommunity},
		{Name: "VisualStudioCode", Category: registry.CategoryGlobal},
		{Name: "macOS", Category: registry.CategoryGlobal},
	}, identities(reg))
}

func TestDiscover_SeedsNameTerm(t *testing.T) {
	reg, err := Discover(createTestFS(), term.New())
	require.NoError(t, err)

	for _, tmpl := range reg.List() {
		require.Equal(t, []string{tmpl.Name()}, term.Strings(tmpl.Terms()))
	}
}

func TestDiscover_RustOnlyScenario(t *testing.T) {
	fsys := fstest.MapFS{
		"gitignore/Rust.gitignore": &fstest.MapFile{Data: []byte("target/\n")},
	}
	in := term.New()

	reg, err := Discover(fsys, in)
	require.NoError(t, err)

	require.Equal(t, 1, reg.Len())
	rust := reg.FindByName("rust")
	require.NotNil(t, rust)
	require.Equal(t, registry.Identity{Name: "Rust", Category: registry.CategoryPrimary}, rust.Identity())
	require.Equal(t, []string{"Rust"}, term.Strings(rust.Terms()))
	require.Empty(t, reg.FindByTerms([]term.Term{in.Intern("cargo")}))
	require.Nil(t, reg.FindByName("NoSuchLang"))
}

func TestDiscover_MissingCategoriesTolerated(t *testing.T) {
	fsys := fstest.MapFS{
		"gitignore/Global/Linux.gitignore": &fstest.MapFile{Data: []byte("*~\n")},
	}

	reg, err := Discover(fsys, term.New())

	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())
}

func TestDiscover_EmptyFS(t *testing.T) {
	reg, err := Discover(fstest.MapFS{}, term.New())

	require.NoError(t, err)
	require.Zero(t, reg.Len())
}

func TestDiscover_InvalidNameIsFatal(t *testing.T) {
	fsys := fstest.MapFS{
		"gitignore/Rust.gitignore":    &fstest.MapFile{Data: []byte("target/\n")},
		"gitignore/Bad\xfe.gitignore": &fstest.MapFile{Data: []byte("x\n")},
	}

	_, err := Discover(fsys, term.New())

	require.ErrorIs(t, err, registry.ErrCorpus)
}

// shuffledFS returns directory entries in random order.
type shuffledFS struct {
	fstest.MapFS
	rng *rand.Rand
}

func (s shuffledFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := s.MapFS.ReadDir(name)
	if err != nil {
		return nil, err
	}
	s.rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
	return entries, nil
}

func TestProperty_DiscoveryDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		base := createTestFS()

		a, err := Discover(base, term.New())
		if err != nil {
			t.Fatal(err)
		}
		b, err := Discover(shuffledFS{MapFS: base, rng: rand.New(rand.NewSource(seed))}, term.New())
		if err != nil {
			t.Fatal(err)
		}

		idsA, idsB := identities(a), identities(b)
		if len(idsA) != len(idsB) {
			t.Fatalf("template count differs: %d vs %d", len(idsA), len(idsB))
		}
		for i := range idsA {
			if idsA[i] != idsB[i] {
				t.Fatalf("identity %d differs: %v vs %v", i, idsA[i], idsB[i])
			}
			ta, tb := a.List()[i], b.List()[i]
			if !equalStrings(term.Strings(ta.Terms()), term.Strings(tb.Terms())) {
				t.Fatalf("terms of %v differ", idsA[i])
			}
		}
	})
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDiscover_EmbeddedCorpus(t *testing.T) {
	reg, err := Discover(templates.FS(), term.New())

	require.NoError(t, err)
	require.NotNil(t, reg.FindByName("Rust"))
	require.NotNil(t, reg.FindByName("macos"))
	require.NotEmpty(t, reg.ByCategory(registry.CategoryCommunity))
}

func TestDiscoverDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gitignore", "Global"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gitignore", "Zig.gitignore"), []byte("zig-out/\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gitignore", "Global", "Vim.gitignore"), []byte("*.swp\n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "gitignore", "Dir.gitignore"), 0o750))

	reg, err := DiscoverDir(dir, term.New())

	require.NoError(t, err)
	require.Equal(t, []registry.Identity{
		{Name: "Zig", Category: registry.CategoryPrimary},
		{Name: "Vim", Category: registry.CategoryGlobal},
	}, identities(reg))
}

func TestDiscoverDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := DiscoverDir(file, term.New())
	require.ErrorIs(t, err, ErrNotDirectory)

	_, err = DiscoverDir(filepath.Join(t.TempDir(), "missing"), term.New())
	require.ErrorIs(t, err, fs.ErrNotExist)
}
