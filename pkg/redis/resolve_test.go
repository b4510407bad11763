package redis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAddresses(t *testing.T) {
	t.Parallel()

	fallback := func() string { return "settings:6379" }
	env := Env{WriteURL: "redis://write:6379", ReadURL: "redis://read:6379"}

	testCases := []struct {
		name     string
		explicit []string
		env      Env
		cluster  bool
		fallback func() string
		want     []string
	}{
		{
			name:     "single uses first explicit address",
			explicit: []string{"a:1", "b:2"},
			env:      env,
			fallback: fallback,
			want:     []string{"redis://a:1"},
		},
		{
			name:     "single falls back to write url",
			env:      env,
			fallback: fallback,
			want:     []string{"redis://write:6379"},
		},
		{
			name:     "single ignores read url",
			env:      Env{ReadURL: "redis://read:6379"},
			fallback: fallback,
			want:     []string{"redis://settings:6379"},
		},
		{
			name:     "single falls back to settings",
			fallback: fallback,
			want:     []string{"redis://settings:6379"},
		},
		{
			name: "single without anything",
			want: []string{},
		},
		{
			name:     "empty explicit strings are ignored",
			explicit: []string{"", ""},
			env:      env,
			want:     []string{"redis://write:6379"},
		},
		{
			name:     "cluster concatenates write, read, explicit",
			explicit: []string{"x:1", "write:6379"},
			env:      env,
			cluster:  true,
			fallback: fallback,
			want:     []string{"redis://write:6379", "redis://read:6379", "redis://x:1", "redis://write:6379"},
		},
		{
			name:     "cluster with write only",
			env:      Env{WriteURL: "write:6379"},
			cluster:  true,
			fallback: fallback,
			want:     []string{"redis://write:6379"},
		},
		{
			name:     "cluster falls back to settings",
			cluster:  true,
			fallback: fallback,
			want:     []string{"redis://settings:6379"},
		},
		{
			name:     "empty fallback yields nothing",
			cluster:  true,
			fallback: func() string { return "" },
			want:     []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := resolveAddresses(tc.explicit, tc.env, tc.cluster, tc.fallback)
			require.Equal(t, tc.want, got)
		})
	}

	t.Run("fallback is not consulted when an address exists", func(t *testing.T) {
		t.Parallel()

		called := false
		resolveAddresses([]string{"a:1"}, Env{}, false, func() string {
			called = true
			return ""
		})
		require.False(t, called)
	})
}

func TestLegacySettingsAddress(t *testing.T) {
	t.Parallel()

	require.Empty(t, legacySettings{}.address())
	require.Empty(t, legacySettings{Port: 6379}.address())
	require.Equal(t, "localhost", legacySettings{Host: "localhost"}.address())
	require.Equal(t, "localhost:6380", legacySettings{Host: "localhost", Port: 6380}.address())
	require.Equal(t, "redis://cache:6379", legacySettings{Host: "redis://cache", Port: 6379}.address())
}
