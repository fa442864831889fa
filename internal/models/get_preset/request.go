package models

type GetPresetRequest struct {
	PresetID string `json:"presetId" binding:"required"`
}
