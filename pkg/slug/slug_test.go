package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Foo", "foo"},
		{"Hello World", "hello-world"},
		{"  Hello,   World!  ", "hello-world"},
		{"Café au lait", "cafe-au-lait"},
		{"snake_case and-dash", "snake-case-and-dash"},
		{"Go 1.24 released", "go-124-released"},
		{"日本語", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.title))
		})
	}
}

func TestFallback(t *testing.T) {
	re := regexp.MustCompile(`^post-\d{4}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, Fallback())
	}
}

func setExists(taken map[string]bool) ExistsFunc {
	return func(_ context.Context, candidate string) (bool, error) {
		return taken[candidate], nil
	}
}

func TestUniqueAppendsNextFreeSuffix(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5} {
		t.Run(fmt.Sprintf("%d existing", n), func(t *testing.T) {
			taken := map[string]bool{}
			if n > 0 {
				taken["foo"] = true
			}
			for i := 1; i < n; i++ {
				taken[fmt.Sprintf("foo-%d", i)] = true
			}

			got, err := Unique(context.Background(), "Foo", setExists(taken))
			require.NoError(t, err)

			if n == 0 {
				assert.Equal(t, "foo", got)
			} else {
				assert.Equal(t, fmt.Sprintf("foo-%d", n), got)
			}
			assert.False(t, taken[got])
		})
	}
}

func TestUniqueFallsBackForEmptyTitle(t *testing.T) {
	got, err := Unique(context.Background(), "!!!", setExists(nil))
	require.NoError(t, err)
	assert.Regexp(t, `^post-\d{4}$`, got)
}

func TestUniquePropagatesLookupErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := Unique(context.Background(), "Foo", func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
