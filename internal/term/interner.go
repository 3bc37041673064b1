// Package term interns template names and topical keywords.
//
// Every distinct string registered with an Interner receives a dense uint32
// identity. A Term wraps that identity, so comparing and hashing names is an
// integer operation instead of a string one. Interned text lives in an
// append-only arena made of chunks that are never freed or rewritten, which
// keeps every string handed out by Lookup valid for the life of the process.
package term

import (
	"errors"
	"math/bits"
	"strings"
	"sync"
	"unsafe"
)

// ErrPoisoned is the panic value raised when an Interner is used after a
// panic escaped while its lock was held.
var ErrPoisoned = errors.New("term: interner poisoned by an earlier panic")

// baseCapacity sizes the first arena chunk and the lookup tables.
const baseCapacity = 100

// Interner assigns identities to strings. The zero value is not usable; use New.
type Interner struct {
	mu       sync.Mutex
	poisoned bool

	ids   map[string]uint32
	texts []string

	buf    []byte   // current chunk, only ever appended to
	chunks [][]byte // retired chunks, kept alive so older views stay valid
}

// Default is the process-wide interner used by From and InternAll.
var Default = New()

// New returns an empty interner.
func New() *Interner {
	return &Interner{
		ids:    make(map[string]uint32, baseCapacity),
		texts:  make([]string, 0, baseCapacity),
		chunks: make([][]byte, 0, 4),
	}
}

// Intern trims surrounding whitespace from s and returns its Term. Equal
// input always yields the same Term and never grows the table.
func (in *Interner) Intern(s string) Term {
	s = strings.TrimSpace(s)

	in.lock()
	defer in.unlock()

	if id, ok := in.ids[s]; ok {
		return Term{id: id, in: in}
	}

	text := in.alloc(s)
	id := uint32(len(in.texts))
	in.texts = append(in.texts, text)
	in.ids[text] = id

	return Term{id: id, in: in}
}

// InternAll interns each string in order.
func (in *Interner) InternAll(ss ...string) []Term {
	out := make([]Term, 0, len(ss))
	for _, s := range ss {
		out = append(out, in.Intern(s))
	}
	return out
}

// Lookup returns the text t was interned from. t must have been issued by in.
func (in *Interner) Lookup(t Term) string {
	in.lock()
	defer in.unlock()
	return in.texts[t.id]
}

// Len returns the number of distinct strings registered.
func (in *Interner) Len() int {
	in.lock()
	defer in.unlock()
	return len(in.texts)
}

// Chunks returns how many arena chunks have been allocated, including the
// current one.
func (in *Interner) Chunks() int {
	in.lock()
	defer in.unlock()
	if in.buf == nil {
		return len(in.chunks)
	}
	return len(in.chunks) + 1
}

// ArenaCap returns the capacity of the current arena chunk.
func (in *Interner) ArenaCap() int {
	in.lock()
	defer in.unlock()
	return cap(in.buf)
}

// alloc copies s into the arena and returns a string aliasing the copy.
// Bytes already written to a chunk are never modified, so the returned string
// stays immutable even though it shares memory with the arena.
func (in *Interner) alloc(s string) string {
	if len(s) == 0 {
		return ""
	}

	if cap(in.buf)-len(in.buf) < len(s) {
		in.grow(len(s))
	}

	start := len(in.buf)
	in.buf = append(in.buf, s...)
	return unsafe.String(&in.buf[start], len(s))
}

// grow retires the current chunk and starts a new one that is at least double
// its capacity and large enough for need bytes.
func (in *Interner) grow(need int) {
	old := cap(in.buf)
	size := max(old*2, need, baseCapacity)
	size = 1 << bits.Len(uint(size-1))

	if in.buf != nil {
		in.chunks = append(in.chunks, in.buf)
	}
	in.buf = make([]byte, 0, size)
}

func (in *Interner) lock() {
	in.mu.Lock()
	if in.poisoned {
		in.mu.Unlock()
		panic(ErrPoisoned)
	}
}

// unlock releases the lock. If the caller is unwinding from a panic the
// interner state may be half-written, so it is poisoned before release.
func (in *Interner) unlock() {
	if r := recover(); r != nil {
		in.poisoned = true
		in.mu.Unlock()
		panic(r)
	}
	in.mu.Unlock()
}
