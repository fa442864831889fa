package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate name",
			err:  &pgconn.PgError{Code: uniqueViolation, ConstraintName: presetNameConstraint},
			want: ErrPresetNameTaken,
		},
		{
			name: "second default for the same page",
			err:  &pgconn.PgError{Code: uniqueViolation, ConstraintName: presetDefaultConstraint},
			want: ErrDefaultPresetConflict,
		},
		{
			name: "missing users row",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "filter_presets_user_uid_fkey"}),
			want: ErrUserNotProvisioned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError(tt.err, "failed to insert preset"), tt.want)
		})
	}

	t.Run("other unique constraint is not a name clash", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "filter_presets_pkey"}
		err := mapWriteError(pgErr, "failed to insert preset")

		assert.NotErrorIs(t, err, ErrPresetNameTaken)
		assert.ErrorIs(t, err, pgErr)
		assert.Contains(t, err.Error(), "failed to insert preset")
	})

	t.Run("non postgres error is wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := mapWriteError(cause, "failed to update preset")

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to update preset: connection reset", err.Error())
	})
}
