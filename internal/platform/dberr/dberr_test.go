// Copyright (c) 2026 Undervalued Books. All rights reserved.

package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undervaluedbooks/api/internal/platform/apperr"
)

func TestWrap_MapsNoRowsToNotFound(t *testing.T) {
	err := Wrap(pgx.ErrNoRows, "find_book")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestWrap_MapsConstraintViolations(t *testing.T) {
	tests := []struct {
		name     string
		sqlState string
		wantCode string
	}{
		{"unique violation", pgerrcode.UniqueViolation, "CONFLICT"},
		{"foreign key violation", pgerrcode.ForeignKeyViolation, "NOT_FOUND"},
		{"unknown state", pgerrcode.SerializationFailure, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrap(&pgconn.PgError{Code: tt.sqlState}, "write_row")

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestWrap_NilPassesThrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "noop"))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", unique)))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, IsUniqueViolation(pgx.ErrNoRows))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
