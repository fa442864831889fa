package models

type DeletePresetRequest struct {
	PresetID string `json:"presetId" binding:"required"`
}
