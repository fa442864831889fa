package models

import (
	"io.winapps.adminconsole/internal/filters"
)

// UpdatePresetRequest changes only the fields that are set
type UpdatePresetRequest struct {
	PresetID  string       `json:"presetId" binding:"required"`
	Name      *string      `json:"name,omitempty"`
	Filters   *filters.Bag `json:"filters,omitempty"`
	IsDefault *bool        `json:"isDefault,omitempty"`
}
