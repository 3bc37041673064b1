package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/gig/internal/log"
	"github.com/zjrosen/gig/internal/presentation"
)

// newRepo creates an empty git work tree, makes it the working directory and
// points HOME somewhere empty so no user config or corpus is picked up.
func newRepo(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o750))
	t.Setenv("HOME", t.TempDir())
	testChdir(t, dir)
	return dir
}

// runGig executes the command tree with fresh flag and config state.
func runGig(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	viper.Reset()
	bindFlags()
	cfgFile = ""
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func readGitignore(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	return string(data)
}

func TestFor_WritesRepoRoot(t *testing.T) {
	dir := newRepo(t)
	sub := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	testChdir(t, sub)

	_, stderr, err := runGig(t, "for", "rust", "VISUALSTUDIOCODE")
	require.NoError(t, err)

	content := readGitignore(t, dir)
	require.Contains(t, content, "### Rust ###\n")
	require.Contains(t, content, "target/")
	require.Contains(t, content, "### VisualStudioCode ###\n")
	require.Less(t, bytes.Index([]byte(content), []byte("Rust")), bytes.Index([]byte(content), []byte("VisualStudioCode")))
	require.Contains(t, stderr, "wrote 2 template(s)")
}

func TestFor_NoSuchLang(t *testing.T) {
	dir := newRepo(t)

	_, stderr, err := runGig(t, "for", "NoSuchLang")
	require.NoError(t, err)
	require.Contains(t, stderr, `no template named "NoSuchLang"`)

	_, statErr := os.Stat(filepath.Join(dir, ".gitignore"))
	require.True(t, os.IsNotExist(statErr))
}

func TestFor_DuplicateNamesWrittenOnce(t *testing.T) {
	dir := newRepo(t)

	_, _, err := runGig(t, "for", "rust", "Rust", "RUST")
	require.NoError(t, err)
	require.Equal(t, 1, bytes.Count([]byte(readGitignore(t, dir)), []byte("### Rust ###")))
}

func TestFor_Category(t *testing.T) {
	dir := newRepo(t)

	_, stderr, err := runGig(t, "for", "macos", "rust", "--category", "global")
	require.NoError(t, err)
	require.Contains(t, stderr, `no template named "rust"`)

	content := readGitignore(t, dir)
	require.Contains(t, content, "### macOS ###")
	require.NotContains(t, content, "### Rust ###")

	_, _, err = runGig(t, "for", "macos", "--category", "nowhere")
	require.Error(t, err)
}

func TestFor_DryRunLeavesFileAlone(t *testing.T) {
	dir := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("keep-me\n"), 0o600))

	stdout, _, err := runGig(t, "for", "rust", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, stdout, "- keep-me")
	require.Contains(t, stdout, "+ ### Rust ###")
	require.Equal(t, "keep-me\n", readGitignore(t, dir))
}

func TestFor_OutputFlag(t *testing.T) {
	newRepo(t)
	out := filepath.Join(t.TempDir(), "custom.ignore")

	_, _, err := runGig(t, "for", "go", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "### Go ###")
}

func TestKeys_ByTerm(t *testing.T) {
	dir := newRepo(t)

	_, _, err := runGig(t, "keys", "cargo")
	require.NoError(t, err)
	require.Contains(t, readGitignore(t, dir), "### Rust ###")
}

func TestKeys_NameIsATerm(t *testing.T) {
	dir := newRepo(t)

	_, _, err := runGig(t, "keys", "haskell")
	require.NoError(t, err)
	require.Contains(t, readGitignore(t, dir), "### Haskell ###")
}

func TestKeys_NoMatch(t *testing.T) {
	dir := newRepo(t)

	_, stderr, err := runGig(t, "keys", "nothing-at-all")
	require.NoError(t, err)
	require.Contains(t, stderr, "no templates for nothing-at-all")

	_, statErr := os.Stat(filepath.Join(dir, ".gitignore"))
	require.True(t, os.IsNotExist(statErr))
}

func TestAdd_IsIdempotent(t *testing.T) {
	dir := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("/build\n"), 0o600))

	_, _, err := runGig(t, "add", "macos")
	require.NoError(t, err)
	first := readGitignore(t, dir)
	require.True(t, bytes.HasPrefix([]byte(first), []byte("/build\n")))
	require.Contains(t, first, "### macOS ###")

	_, stderr, err := runGig(t, "add", "macos")
	require.NoError(t, err)
	require.Contains(t, stderr, "macOS is already in")
	require.Equal(t, first, readGitignore(t, dir))
}

func TestList_Text(t *testing.T) {
	newRepo(t)

	stdout, _, err := runGig(t, "list", "rust")
	require.NoError(t, err)
	require.Contains(t, stdout, "gitignore/Rust.gitignore")
	require.Contains(t, stdout, "<~ Rust, Cargo.toml")
}

func TestList_JSON(t *testing.T) {
	newRepo(t)

	stdout, _, err := runGig(t, "list", "--json", "--category", "global")
	require.NoError(t, err)

	var dtos []presentation.TemplateDTO
	require.NoError(t, json.Unmarshal([]byte(stdout), &dtos))
	require.NotEmpty(t, dtos)
	for _, d := range dtos {
		require.Equal(t, "global", d.Category)
		require.Equal(t, d.Name, d.Terms[0])
	}
}

func TestTerms_JSON(t *testing.T) {
	newRepo(t)

	stdout, _, err := runGig(t, "terms", "--json")
	require.NoError(t, err)

	var dtos []presentation.TermDTO
	require.NoError(t, json.Unmarshal([]byte(stdout), &dtos))
	found := false
	for _, d := range dtos {
		if d.Term == "Cargo" {
			found = true
			require.Equal(t, []string{"Rust"}, d.Templates)
		}
	}
	require.True(t, found)
}

func TestConfig_Associations(t *testing.T) {
	dir := newRepo(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`associations:
  - templates: [Go]
    terms: [gopher]
`), 0o600))

	_, _, err := runGig(t, "--config", cfgPath, "keys", "gopher")
	require.NoError(t, err)
	require.Contains(t, readGitignore(t, dir), "### Go ###")
}

func TestConfig_HeadersOff(t *testing.T) {
	dir := newRepo(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("headers: false\n"), 0o600))

	_, _, err := runGig(t, "--config", cfgPath, "for", "rust")
	require.NoError(t, err)
	content := readGitignore(t, dir)
	require.NotContains(t, content, "###")
	require.Contains(t, content, "target/")
}

func TestConfig_InvalidMode(t *testing.T) {
	newRepo(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("mode: merge\n"), 0o600))

	_, _, err := runGig(t, "--config", cfgPath, "for", "rust")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestConfig_EnvOverride(t *testing.T) {
	dir := newRepo(t)
	t.Setenv("GIG_MODE", "append")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("/build\n"), 0o600))

	_, _, err := runGig(t, "for", "rust")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix([]byte(readGitignore(t, dir)), []byte("/build\n")))
}

func TestAssetsDir(t *testing.T) {
	dir := newRepo(t)
	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "gitignore"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "gitignore", "Custom.gitignore"), []byte("custom/\n"), 0o600))

	_, _, err := runGig(t, "for", "custom", "--assets-dir", assets)
	require.NoError(t, err)
	require.Contains(t, readGitignore(t, dir), "custom/")
}

func TestConfigInit(t *testing.T) {
	dir := newRepo(t)

	_, _, err := runGig(t, "config:init")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, ".gig", "config.yaml"))
	require.NoError(t, err)

	_, _, err = runGig(t, "config:init")
	require.Error(t, err)

	_, _, err = runGig(t, "config:init", "--force")
	require.NoError(t, err)
}

func TestDebugLogToFile(t *testing.T) {
	dir := newRepo(t)
	logPath := filepath.Join(t.TempDir(), "gig.log")
	t.Cleanup(log.Reset)

	_, _, err := runGig(t, "for", "rust", "--debug", "--log-file", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "gig starting")
	require.Contains(t, readGitignore(t, dir), "### Rust ###")
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
