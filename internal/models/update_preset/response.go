package models

import (
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

type UpdatePresetResponse struct {
	Preset  presetmodels.FilterPreset `json:"preset"`
	Message string                    `json:"message"`
}
