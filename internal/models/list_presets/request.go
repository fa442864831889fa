package models

import (
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

type ListPresetsRequest struct {
	Resource presetmodels.Resource `json:"resource" binding:"required"`
}
