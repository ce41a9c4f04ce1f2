package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"KYQUERY_GRAPH_CACHE",
		"KYQUERY_PAGE_CACHE_MB",
		"KYQUERY_LIBSQL_AUTH_TOKEN",
	} {
		os.Unsetenv(envVar)
	}
}

func TestResolveCachePathExplicit(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	require.Equal(t, "/tmp/explicit.db", ResolveCachePath("/tmp/explicit.db"))
}

func TestResolveCachePathEnv(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("KYQUERY_GRAPH_CACHE", "/var/cache/kgtk.db")
	require.Equal(t, "/var/cache/kgtk.db", ResolveCachePath(""))
}

func TestResolveCachePathDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	path := ResolveCachePath("")
	require.Contains(t, path, "kgtk-graph-cache-")
	require.Contains(t, path, os.TempDir())
}

func TestPageCacheMBDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	require.Equal(t, 4096, PageCacheMB(4096))
}

func TestPageCacheMBOverride(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("KYQUERY_PAGE_CACHE_MB", "8192")
	require.Equal(t, 8192, PageCacheMB(4096))
}

func TestPageCacheMBInvalidFallsBackToDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("KYQUERY_PAGE_CACHE_MB", "not-a-number")
	require.Equal(t, 4096, PageCacheMB(4096))

	os.Setenv("KYQUERY_PAGE_CACHE_MB", "-10")
	require.Equal(t, 4096, PageCacheMB(4096))
}

func TestLibsqlAuthToken(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	require.Empty(t, LibsqlAuthToken())
	os.Setenv("KYQUERY_LIBSQL_AUTH_TOKEN", "secret-token")
	require.Equal(t, "secret-token", LibsqlAuthToken())
}
