// Package models holds the gorm catalog models for the graph cache: one row
// per imported source file (FileInfo) and one row per materialized graph
// table (GraphInfo).
package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// FileInfo is the freshness record for one imported source file. The real
// filesystem path is the primary key; a file is fresh as long as its size
// and modtime still match what was recorded at import time.
type FileInfo struct {
	Path      string `gorm:"primaryKey;type:text"`
	Size      int64  `gorm:"not null"`
	ModTime   int64  `gorm:"not null"` // unix nanoseconds
	Hash      string `gorm:"type:text"`
	GraphName string `gorm:"type:varchar(64);index;not null"`
}

// TableName keeps the catalog table name stable regardless of Go naming.
func (FileInfo) TableName() string { return "fileinfo" }

// GraphInfo is the metadata record for one graph_N table: its header order,
// on-disk size (including its indexes), and last-access time.
type GraphInfo struct {
	Name       string         `gorm:"primaryKey;type:varchar(64)"`
	Header     datatypes.JSON `gorm:"type:text;not null"` // ordered []string of column names
	Size       int64          `gorm:"not null;default:0"`
	LastAccess int64          `gorm:"not null"` // unix nanoseconds
}

func (GraphInfo) TableName() string { return "graphinfo" }

// MarshalHeader and UnmarshalHeader convert GraphInfo.Header to and from the
// ordered column-name slice the cache and translator work with.
func MarshalHeader(cols []string) (datatypes.JSON, error) {
	b, err := json.Marshal(cols)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func UnmarshalHeader(j datatypes.JSON) ([]string, error) {
	if len(j) == 0 {
		return nil, nil
	}
	var cols []string
	if err := json.Unmarshal(j, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}
