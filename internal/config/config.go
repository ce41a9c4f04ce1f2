package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file in the current directory if present, seeding
// process environment variables that were not already set. Absence of the
// file is not an error; the teacher uses godotenv the same way for local
// dev configuration.
func LoadEnv() {
	_ = godotenv.Load()
}

// ResolveCachePath returns the graph cache path to use: the explicit
// --graph-cache value if given, otherwise KYQUERY_GRAPH_CACHE from the
// environment, otherwise the default per-user temp path. Resolved once at
// driver startup, never as process-wide mutable state.
func ResolveCachePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("KYQUERY_GRAPH_CACHE"); env != "" {
		return env
	}
	return defaultCachePath()
}

func defaultCachePath() string {
	name := "anon"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("kgtk-graph-cache-%s.db", name))
}

// PageCacheMB returns the SQLite page cache budget in megabytes: the
// KYQUERY_PAGE_CACHE_MB environment override if set and valid, otherwise
// the default.
func PageCacheMB(defaultMB int) int {
	raw := os.Getenv("KYQUERY_PAGE_CACHE_MB")
	if raw == "" {
		return defaultMB
	}
	var mb int
	if _, err := fmt.Sscanf(raw, "%d", &mb); err != nil || mb <= 0 {
		return defaultMB
	}
	return mb
}

// LibsqlAuthToken returns the auth token for a remote libsql cache, read
// from the environment so it never appears on the command line.
func LibsqlAuthToken() string {
	return os.Getenv("KYQUERY_LIBSQL_AUTH_TOKEN")
}
