package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.adminconsole/internal/db"
	"io.winapps.adminconsole/internal/filters"
	deletemodels "io.winapps.adminconsole/internal/models/delete_preset"
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
	getmodels "io.winapps.adminconsole/internal/models/get_preset"
	listmodels "io.winapps.adminconsole/internal/models/list_presets"
	savemodels "io.winapps.adminconsole/internal/models/save_preset"
	updatemodels "io.winapps.adminconsole/internal/models/update_preset"
)

// PresetStore persists saved filter presets
type PresetStore interface {
	CreatePreset(ctx context.Context, preset *presetmodels.FilterPreset) error
	ListPresets(ctx context.Context, userUID string, resource presetmodels.Resource) ([]presetmodels.FilterPreset, error)
	GetPreset(ctx context.Context, userUID, presetID string) (*presetmodels.FilterPreset, error)
	UpdatePreset(ctx context.Context, userUID, presetID string, changes db.PresetChanges) (*presetmodels.FilterPreset, error)
	DeletePreset(ctx context.Context, userUID, presetID string) error
	TouchPreset(ctx context.Context, userUID, presetID string) error
	PurgeStalePresets(ctx context.Context, before time.Time) (int64, error)
}

const storeTimeout = 10 * time.Second

type PresetsHandler struct {
	store  PresetStore
	logger *zap.SugaredLogger
}

// NewPresetsHandler creates a new presets handler
func NewPresetsHandler(store PresetStore, logger *zap.SugaredLogger) *PresetsHandler {
	return &PresetsHandler{
		store:  store,
		logger: logger,
	}
}

func validatePresetName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "Name is required"
	}
	if len([]rune(name)) > presetmodels.MaxPresetNameLength {
		return "", "Name is too long"
	}
	return name, ""
}

// respondWriteConflict answers the client for store write errors it can act on
// and reports whether it did
func respondWriteConflict(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, db.ErrPresetNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "A preset with this name already exists"})
	case errors.Is(err, db.ErrDefaultPresetConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Another default preset was set at the same time"})
	case errors.Is(err, db.ErrUserNotProvisioned):
		c.JSON(http.StatusForbidden, gin.H{"error": "User not provisioned"})
	default:
		return false
	}
	return true
}

// SavePreset handles saving the current filter bag of a page under a name
func (h *PresetsHandler) SavePreset(c *gin.Context) {
	var req savemodels.SavePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userUID, ok := currentUserUID(c)
	if !ok {
		return
	}

	if !req.Resource.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource"})
		return
	}
	name, problem := validatePresetName(req.Name)
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	preset := &presetmodels.FilterPreset{
		UserUID:   userUID,
		Resource:  req.Resource,
		Name:      name,
		Filters:   req.Filters,
		IsDefault: req.IsDefault,
	}
	if err := h.store.CreatePreset(ctx, preset); err != nil {
		if respondWriteConflict(c, err) {
			return
		}
		h.logError(c, err, "failed to save preset", "resource", req.Resource)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preset"})
		return
	}

	h.logInfo(c, "preset saved", "preset_id", preset.ID, "resource", preset.Resource, "active_count", preset.ActiveCount)

	c.JSON(http.StatusCreated, savemodels.SavePresetResponse{
		Preset:  *preset,
		Message: "Preset saved successfully",
	})
}

// ListPresets handles listing the user's presets for one page
func (h *PresetsHandler) ListPresets(c *gin.Context) {
	var req listmodels.ListPresetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userUID, ok := currentUserUID(c)
	if !ok {
		return
	}

	if !req.Resource.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	presets, err := h.store.ListPresets(ctx, userUID, req.Resource)
	if err != nil {
		h.logError(c, err, "failed to list presets", "resource", req.Resource)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list presets"})
		return
	}
	if presets == nil {
		presets = []presetmodels.FilterPreset{}
	}

	c.JSON(http.StatusOK, listmodels.ListPresetsResponse{
		Resource: req.Resource,
		Presets:  presets,
	})
}

// GetPreset handles loading a preset so the page can apply it
func (h *PresetsHandler) GetPreset(c *gin.Context) {
	var req getmodels.GetPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userUID, ok := currentUserUID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	preset, err := h.store.GetPreset(ctx, userUID, req.PresetID)
	if errors.Is(err, db.ErrPresetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}
	if err != nil {
		h.logError(c, err, "failed to get preset", "preset_id", req.PresetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get preset"})
		return
	}

	// Touch failures are logged only
	if err := h.store.TouchPreset(ctx, userUID, preset.ID); err != nil {
		h.logError(c, err, "failed to record preset use", "preset_id", preset.ID)
	}

	c.JSON(http.StatusOK, getmodels.GetPresetResponse{
		Preset:       *preset,
		ActiveFields: filters.ActiveFields(preset.Filters),
	})
}

// UpdatePreset handles renaming a preset, replacing its filters or making it the page default
func (h *PresetsHandler) UpdatePreset(c *gin.Context) {
	var req updatemodels.UpdatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userUID, ok := currentUserUID(c)
	if !ok {
		return
	}

	if req.Name == nil && req.Filters == nil && req.IsDefault == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	changes := db.PresetChanges{
		Filters:   req.Filters,
		IsDefault: req.IsDefault,
	}
	if req.Name != nil {
		name, problem := validatePresetName(*req.Name)
		if problem != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": problem})
			return
		}
		changes.Name = &name
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	preset, err := h.store.UpdatePreset(ctx, userUID, req.PresetID, changes)
	switch {
	case errors.Is(err, db.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	case respondWriteConflict(c, err):
		return
	case err != nil:
		h.logError(c, err, "failed to update preset", "preset_id", req.PresetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preset"})
		return
	}

	c.JSON(http.StatusOK, updatemodels.UpdatePresetResponse{
		Preset:  *preset,
		Message: "Preset updated successfully",
	})
}

// DeletePreset handles removing a preset
func (h *PresetsHandler) DeletePreset(c *gin.Context) {
	var req deletemodels.DeletePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userUID, ok := currentUserUID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	err := h.store.DeletePreset(ctx, userUID, req.PresetID)
	if errors.Is(err, db.ErrPresetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}
	if err != nil {
		h.logError(c, err, "failed to delete preset", "preset_id", req.PresetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete preset"})
		return
	}

	h.logInfo(c, "preset deleted", "preset_id", req.PresetID)

	c.JSON(http.StatusOK, deletemodels.DeletePresetResponse{
		PresetID: req.PresetID,
		Message:  "Preset deleted successfully",
	})
}
