package cache

import (
	"fmt"

	"github.com/termfx/kyquery/models"
)

// migrate brings the catalog schema (fileinfo/graphinfo) up to date. Dynamic
// graph_N tables are created on demand by the import path in ensure.go, not
// here: their shape depends on each source file's header.
func (c *Cache) migrate() error {
	if _, err := execWithRetry(c.db, "PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if err := c.gdb.AutoMigrate(&models.FileInfo{}, &models.GraphInfo{}); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}
