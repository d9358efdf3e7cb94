package slug_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cms-admin-api/internal/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Introduction au Machine Learning", "introduction-au-machine-learning"},
		{"Déjà vu à Noël", "deja-vu-a-noel"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Already-Slugged-Title", "already-slugged-title"},
		{"100% Go!", "100-go"},
		{"Œuvre & Cie", "oeuvre-cie"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.title), "title %q", tc.title)
	}
}

func existsIn(taken map[string]bool) slug.Exists {
	return func(ctx context.Context, s, excludeID string) (bool, error) {
		return taken[s], nil
	}
}

func TestResolve_FreeSlug(t *testing.T) {
	got, err := slug.Resolve(context.Background(), "hello-world", "", existsIn(map[string]bool{}))
	require.NoError(t, err)
	assert.Equal(t, "hello-world", got)
}

func TestResolve_Collisions(t *testing.T) {
	taken := map[string]bool{
		"hello-world":   true,
		"hello-world-2": true,
		"hello-world-3": true,
	}

	got, err := slug.Resolve(context.Background(), "hello-world", "", existsIn(taken))
	require.NoError(t, err)
	assert.Equal(t, "hello-world-4", got)
}

func TestResolve_SequenceIsPairwiseDistinct(t *testing.T) {
	taken := map[string]bool{}
	var got []string

	for i := 0; i < 10; i++ {
		s, err := slug.Resolve(context.Background(), "introduction-au-machine-learning", "", existsIn(taken))
		require.NoError(t, err)
		taken[s] = true
		got = append(got, s)
	}

	assert.Equal(t, "introduction-au-machine-learning", got[0])
	assert.Equal(t, "introduction-au-machine-learning-2", got[1])
	for i := 2; i < 10; i++ {
		assert.Equal(t, fmt.Sprintf("introduction-au-machine-learning-%d", i+1), got[i])
	}
}

func TestResolve_EmptyBase(t *testing.T) {
	got, err := slug.Resolve(context.Background(), "", "", existsIn(map[string]bool{}))
	require.NoError(t, err)
	assert.Equal(t, "untitled", got)
}

func TestResolve_CapExceeded(t *testing.T) {
	alwaysTaken := func(ctx context.Context, s, excludeID string) (bool, error) {
		return true, nil
	}

	_, err := slug.Resolve(context.Background(), "hello", "", alwaysTaken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1000 attempts")
}

func TestResolve_PropagatesStoreError(t *testing.T) {
	boom := func(ctx context.Context, s, excludeID string) (bool, error) {
		return false, fmt.Errorf("connection refused")
	}

	_, err := slug.Resolve(context.Background(), "hello", "", boom)
	require.Error(t, err)
}
