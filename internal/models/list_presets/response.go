package models

import (
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

type ListPresetsResponse struct {
	Resource presetmodels.Resource       `json:"resource"`
	Presets  []presetmodels.FilterPreset `json:"presets"`
}
