package term

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_UsesDefaultInterner(t *testing.T) {
	a := From("Rust")
	b := Default.Intern(" Rust ")

	require.Equal(t, a, b)
	require.Equal(t, "Rust", a.String())
}

func TestTerm_ZeroValue(t *testing.T) {
	var zero Term

	require.True(t, zero.IsZero())
	require.Equal(t, "", zero.String())
	require.False(t, From("x").IsZero())
}

func TestTerm_EqualFoldTrimsCandidate(t *testing.T) {
	in := New()
	tm := in.Intern("Cargo.toml")

	require.True(t, tm.EqualFold("  cargo.TOML "))
	require.False(t, tm.EqualFold("cargo"))
}

func TestTerm_Formatting(t *testing.T) {
	in := New()
	tm := in.Intern("Node")
	other := in.Intern("Vue")

	require.Equal(t, "Node", fmt.Sprint(tm))
	require.Equal(t, "Term(1)", fmt.Sprintf("%#v", other))
}

func TestTerm_UsableAsMapKey(t *testing.T) {
	in := New()
	seen := map[Term]int{}

	seen[in.Intern("js")]++
	seen[in.Intern(" js")]++
	seen[in.Intern("JS")]++

	require.Len(t, seen, 2)
	require.Equal(t, 2, seen[in.Intern("js")])
}

func TestStrings(t *testing.T) {
	in := New()
	ts := in.InternAll("a", "b", " c ")

	require.Equal(t, []string{"a", "b", "c"}, Strings(ts))
}
