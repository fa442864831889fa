package models

import (
	"io.winapps.adminconsole/internal/filters"
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

type SavePresetRequest struct {
	Resource  presetmodels.Resource `json:"resource" binding:"required"`
	Name      string                `json:"name" binding:"required"`
	Filters   filters.Bag           `json:"filters"`
	IsDefault bool                  `json:"isDefault"`
}
