package models

import (
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

type SavePresetResponse struct {
	Preset  presetmodels.FilterPreset `json:"preset"`
	Message string                    `json:"message"`
}
