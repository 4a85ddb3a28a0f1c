package key

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetStable(t *testing.T) {
	in := New()
	a := in.Get("p")
	b := in.Get("p")
	require.Equal(t, a, b)

	c := in.Get("q")
	require.NotEqual(t, a, c)
}

func TestGetNeverReturnsEpsilon(t *testing.T) {
	in := New()
	for _, name := range []string{"p", "q", "r", "eps-like-name"} {
		require.NotEqual(t, Epsilon, in.Get(name))
	}
}

func TestPairStableAndDistinct(t *testing.T) {
	in := New()
	p := in.Get("p")
	gamma := in.Get("gamma")
	q := in.Get("q")

	pg1 := in.Pair(p, gamma)
	pg2 := in.Pair(p, gamma)
	require.Equal(t, pg1, pg2)

	pq := in.Pair(p, q)
	require.NotEqual(t, pg1, pq)

	// Order matters: (p,gamma) != (gamma,p).
	gp := in.Pair(gamma, p)
	require.NotEqual(t, pg1, gp)
}

func TestPairDisjointFromNameKeys(t *testing.T) {
	in := New()
	names := make([]Key, 0, 64)
	for i := 0; i < 64; i++ {
		names = append(names, in.Get(string(rune('a'+i%26))+string(rune(i))))
	}
	pair := in.Pair(names[0], names[1])
	for _, n := range names {
		require.NotEqual(t, pair, n)
	}
}

func TestString(t *testing.T) {
	in := New()
	p := in.Get("p")
	gamma := in.Get("gamma")
	pg := in.Pair(p, gamma)

	require.Equal(t, "p", in.String(p))
	require.Equal(t, "gamma", in.String(gamma))
	require.Equal(t, "<eps>", in.String(Epsilon))
	require.Equal(t, "(p,gamma)", in.String(pg))
}

func TestConcurrentGet(t *testing.T) {
	in := New()
	done := make(chan Key, 100)
	for i := 0; i < 100; i++ {
		go func() {
			done <- in.Get("shared")
		}()
	}
	first := <-done
	for i := 1; i < 100; i++ {
		require.Equal(t, first, <-done)
	}
}
