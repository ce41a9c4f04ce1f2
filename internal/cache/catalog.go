package cache

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/termfx/kyquery/models"
)

// lookupFileInfo returns the catalog row for path, or (nil, nil) if none
// exists yet.
func (c *Cache) lookupFileInfo(path string) (*models.FileInfo, error) {
	var fi models.FileInfo
	err := c.gdb.Where("path = ?", path).First(&fi).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up file catalog entry: %w", err)
	}
	return &fi, nil
}

// upsertFileInfo records (or replaces) the freshness entry for one imported
// file.
func (c *Cache) upsertFileInfo(fi models.FileInfo) error {
	return gormWithRetry(func() error { return c.gdb.Save(&fi).Error })
}

// deleteFileInfo removes every catalog row pointing at graphName.
func (c *Cache) deleteFileInfo(graphName string) error {
	return gormWithRetry(func() error {
		return c.gdb.Where("graph_name = ?", graphName).Delete(&models.FileInfo{}).Error
	})
}

// lookupGraphInfo returns the metadata row for a graph_N table, or
// (nil, nil) if it doesn't exist.
func (c *Cache) lookupGraphInfo(name string) (*models.GraphInfo, error) {
	var gi models.GraphInfo
	err := c.gdb.Where("name = ?", name).First(&gi).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up graph catalog entry: %w", err)
	}
	return &gi, nil
}

func (c *Cache) upsertGraphInfo(gi models.GraphInfo) error {
	return gormWithRetry(func() error { return c.gdb.Save(&gi).Error })
}

func (c *Cache) deleteGraphInfo(name string) error {
	return gormWithRetry(func() error {
		return c.gdb.Where("name = ?", name).Delete(&models.GraphInfo{}).Error
	})
}

// touchGraphAccess bumps a GraphInfo's LastAccess timestamp, per the
// idempotent-import invariant that querying an unchanged input must not
// mutate anything beyond the access-time field.
func (c *Cache) touchGraphAccess(name string, unixNano int64) error {
	return gormWithRetry(func() error {
		return c.gdb.Model(&models.GraphInfo{}).Where("name = ?", name).
			Update("last_access", unixNano).Error
	})
}

// addGraphSize adds delta (which may be negative) to a graph's recorded
// on-disk size, used after index creation.
func (c *Cache) addGraphSize(name string, delta int64) error {
	return gormWithRetry(func() error {
		return c.gdb.Model(&models.GraphInfo{}).Where("name = ?", name).
			Update("size", gorm.Expr("size + ?", delta)).Error
	})
}

// nextGraphName allocates the next graph_N table name, mirroring
// original_source's `number_of_graphs() + 1` (1-based, so the first graph is
// graph_1), then probing upward past any name still in the catalog. A name
// freed by a dropped table can be handed out again.
func (c *Cache) nextGraphName() (string, error) {
	var n int64
	if err := c.gdb.Model(&models.GraphInfo{}).Count(&n).Error; err != nil {
		return "", fmt.Errorf("counting graph catalog rows: %w", err)
	}
	graphID := n + 1
	for {
		name := fmt.Sprintf("graph_%d", graphID)
		existing, err := c.lookupGraphInfo(name)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return name, nil
		}
		graphID++
	}
}
