package models

type DeletePresetResponse struct {
	PresetID string `json:"presetId"`
	Message  string `json:"message"`
}
