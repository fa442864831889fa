package models

import (
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

type GetPresetResponse struct {
	Preset       presetmodels.FilterPreset `json:"preset"`
	ActiveFields []string                  `json:"activeFields"`
}
