package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"io.winapps.adminconsole/internal/filters"
	presetmodels "io.winapps.adminconsole/internal/models/filter_preset"
)

var (
	// ErrPresetNotFound is returned when no preset matches the id for the user
	ErrPresetNotFound = errors.New("filter preset not found")
	// ErrPresetNameTaken is returned when the user already has a preset with that name on the resource
	ErrPresetNameTaken = errors.New("filter preset name already in use")
	// ErrDefaultPresetConflict is returned when another default was set for the same page concurrently
	ErrDefaultPresetConflict = errors.New("filter preset default changed concurrently")
	// ErrUserNotProvisioned is returned when the authenticated uid has no users row
	ErrUserNotProvisioned = errors.New("user not provisioned")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	// Postgres names the table-level UNIQUE(user_uid, resource, name) constraint this way
	presetNameConstraint    = "filter_presets_user_uid_resource_name_key"
	presetDefaultConstraint = "idx_filter_presets_default"
)

// PresetChanges lists the preset fields to update; nil fields are left unchanged
type PresetChanges struct {
	Name      *string
	Filters   *filters.Bag
	IsDefault *bool
}

// PresetRepository stores filter presets in Postgres and caches per-page lists in Redis
type PresetRepository struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewPresetRepository creates a new preset repository
func NewPresetRepository(postgres *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) *PresetRepository {
	return &PresetRepository{
		postgres: postgres,
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

const presetColumns = `id::text, user_uid, resource, name, filters, active_count, is_default, created_at, updated_at, last_used_at`

func presetCacheKey(userUID string, resource presetmodels.Resource) string {
	return fmt.Sprintf("filter_presets:%s:%s", userUID, resource)
}

// CreatePreset inserts a new preset, filling in its id, active count and timestamps
func (r *PresetRepository) CreatePreset(ctx context.Context, preset *presetmodels.FilterPreset) error {
	if preset.Filters == nil {
		preset.Filters = filters.Bag{}
	}
	filtersJSON, err := json.Marshal(preset.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}

	now := time.Now().UTC()
	preset.ID = uuid.New().String()
	preset.ActiveCount = filters.CountActive(preset.Filters)
	preset.CreatedAt = now
	preset.UpdatedAt = now
	preset.LastUsedAt = now

	tx, err := r.postgres.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if preset.IsDefault {
		if err := clearDefault(ctx, tx, preset.UserUID, preset.Resource, preset.ID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO filter_presets (id, user_uid, resource, name, filters, active_count, is_default, created_at, updated_at, last_used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		preset.ID, preset.UserUID, string(preset.Resource), preset.Name, filtersJSON,
		preset.ActiveCount, preset.IsDefault, preset.CreatedAt, preset.UpdatedAt, preset.LastUsedAt,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert preset")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.invalidate(ctx, preset.UserUID, preset.Resource)
	return nil
}

// ListPresets returns the user's presets for a resource, default first then by name
func (r *PresetRepository) ListPresets(ctx context.Context, userUID string, resource presetmodels.Resource) ([]presetmodels.FilterPreset, error) {
	cacheKey := presetCacheKey(userUID, resource)

	// Try Redis first
	if cached, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
		var presets []presetmodels.FilterPreset
		if err := json.Unmarshal([]byte(cached), &presets); err == nil {
			return presets, nil
		}
	}

	rows, err := r.postgres.Query(ctx, `
		SELECT `+presetColumns+`
		FROM filter_presets
		WHERE user_uid = $1 AND resource = $2
		ORDER BY is_default DESC, name ASC`,
		userUID, string(resource),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	presets := []presetmodels.FilterPreset{}
	for rows.Next() {
		preset, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *preset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	if presetsJSON, err := json.Marshal(presets); err == nil {
		r.redis.Set(ctx, cacheKey, presetsJSON, r.cacheTTL)
	}

	return presets, nil
}

// GetPreset returns one of the user's presets
func (r *PresetRepository) GetPreset(ctx context.Context, userUID, presetID string) (*presetmodels.FilterPreset, error) {
	if _, err := uuid.Parse(presetID); err != nil {
		return nil, ErrPresetNotFound
	}

	row := r.postgres.QueryRow(ctx, `
		SELECT `+presetColumns+`
		FROM filter_presets
		WHERE id = $1 AND user_uid = $2`,
		presetID, userUID,
	)
	preset, err := scanPreset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, err
	}
	return preset, nil
}

// UpdatePreset applies changes to one of the user's presets and returns the result
func (r *PresetRepository) UpdatePreset(ctx context.Context, userUID, presetID string, changes PresetChanges) (*presetmodels.FilterPreset, error) {
	if _, err := uuid.Parse(presetID); err != nil {
		return nil, ErrPresetNotFound
	}

	tx, err := r.postgres.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+presetColumns+`
		FROM filter_presets
		WHERE id = $1 AND user_uid = $2
		FOR UPDATE`,
		presetID, userUID,
	)
	preset, err := scanPreset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		preset.Name = *changes.Name
	}
	if changes.Filters != nil {
		preset.Filters = *changes.Filters
		if preset.Filters == nil {
			preset.Filters = filters.Bag{}
		}
		preset.ActiveCount = filters.CountActive(preset.Filters)
	}
	if changes.IsDefault != nil {
		preset.IsDefault = *changes.IsDefault
	}
	preset.UpdatedAt = time.Now().UTC()

	if preset.IsDefault {
		if err := clearDefault(ctx, tx, userUID, preset.Resource, preset.ID); err != nil {
			return nil, err
		}
	}

	filtersJSON, err := json.Marshal(preset.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE filter_presets
		SET name = $1, filters = $2, active_count = $3, is_default = $4, updated_at = $5
		WHERE id = $6 AND user_uid = $7`,
		preset.Name, filtersJSON, preset.ActiveCount, preset.IsDefault, preset.UpdatedAt,
		preset.ID, userUID,
	)
	if err != nil {
		return nil, mapWriteError(err, "failed to update preset")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.invalidate(ctx, userUID, preset.Resource)
	return preset, nil
}

// DeletePreset removes one of the user's presets
func (r *PresetRepository) DeletePreset(ctx context.Context, userUID, presetID string) error {
	if _, err := uuid.Parse(presetID); err != nil {
		return ErrPresetNotFound
	}

	var resource string
	err := r.postgres.QueryRow(ctx, `
		DELETE FROM filter_presets
		WHERE id = $1 AND user_uid = $2
		RETURNING resource`,
		presetID, userUID,
	).Scan(&resource)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPresetNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	r.invalidate(ctx, userUID, presetmodels.Resource(resource))
	return nil
}

// TouchPreset records that the user just applied the preset
func (r *PresetRepository) TouchPreset(ctx context.Context, userUID, presetID string) error {
	var resource string
	err := r.postgres.QueryRow(ctx, `
		UPDATE filter_presets
		SET last_used_at = NOW()
		WHERE id = $1 AND user_uid = $2
		RETURNING resource`,
		presetID, userUID,
	).Scan(&resource)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPresetNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to touch preset: %w", err)
	}

	r.invalidate(ctx, userUID, presetmodels.Resource(resource))
	return nil
}

// PurgeStalePresets deletes non-default presets not used since before and
// returns how many were removed
func (r *PresetRepository) PurgeStalePresets(ctx context.Context, before time.Time) (int64, error) {
	rows, err := r.postgres.Query(ctx, `
		DELETE FROM filter_presets
		WHERE is_default = FALSE AND last_used_at < $1
		RETURNING user_uid, resource`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge presets: %w", err)
	}
	defer rows.Close()

	var purged int64
	keys := map[string]struct{}{}
	for rows.Next() {
		var userUID, resource string
		if err := rows.Scan(&userUID, &resource); err != nil {
			return purged, fmt.Errorf("failed to scan purged preset: %w", err)
		}
		purged++
		keys[presetCacheKey(userUID, presetmodels.Resource(resource))] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return purged, fmt.Errorf("failed to read purged presets: %w", err)
	}

	for key := range keys {
		r.redis.Del(ctx, key)
	}

	return purged, nil
}

func (r *PresetRepository) invalidate(ctx context.Context, userUID string, resource presetmodels.Resource) {
	r.redis.Del(ctx, presetCacheKey(userUID, resource))
}

func clearDefault(ctx context.Context, tx pgx.Tx, userUID string, resource presetmodels.Resource, keepID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE filter_presets
		SET is_default = FALSE, updated_at = NOW()
		WHERE user_uid = $1 AND resource = $2 AND is_default AND id <> $3`,
		userUID, string(resource), keepID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear default preset: %w", err)
	}
	return nil
}

func scanPreset(row pgx.Row) (*presetmodels.FilterPreset, error) {
	var preset presetmodels.FilterPreset
	var resource string
	var filtersJSON []byte

	err := row.Scan(
		&preset.ID,
		&preset.UserUID,
		&resource,
		&preset.Name,
		&filtersJSON,
		&preset.ActiveCount,
		&preset.IsDefault,
		&preset.CreatedAt,
		&preset.UpdatedAt,
		&preset.LastUsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan preset: %w", err)
	}

	preset.Resource = presetmodels.Resource(resource)
	if err := json.Unmarshal(filtersJSON, &preset.Filters); err != nil {
		return nil, fmt.Errorf("failed to decode preset filters: %w", err)
	}
	return &preset, nil
}

func mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	switch {
	case pgErr.Code == uniqueViolation && pgErr.ConstraintName == presetNameConstraint:
		return ErrPresetNameTaken
	case pgErr.Code == uniqueViolation && pgErr.ConstraintName == presetDefaultConstraint:
		return ErrDefaultPresetConflict
	case pgErr.Code == foreignKeyViolation:
		return ErrUserNotProvisioned
	}
	return fmt.Errorf("%s: %w", msg, err)
}
