package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Sample is one stored measurement
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// SampleList stores a series' samples as a single JSON array column
type SampleList []Sample

// Value encodes the samples as JSON, never as SQL NULL
func (s SampleList) Value() (driver.Value, error) {
	if s == nil {
		s = SampleList{}
	}
	raw, err := json.Marshal([]Sample(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode samples: %w", err)
	}
	return datatypes.JSON(raw).Value()
}

// Scan decodes a JSON array column
func (s *SampleList) Scan(value interface{}) error {
	var raw datatypes.JSON
	if err := raw.Scan(value); err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		*s = SampleList{}
		return nil
	}
	var out []Sample
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode samples: %w", err)
	}
	*s = out
	return nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL has no json type, postgres gets the binary variant.
func (SampleList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
