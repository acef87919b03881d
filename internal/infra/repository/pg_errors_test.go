package repository

import (
	"errors"
	"fmt"
	"testing"

	repo "tienda/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "record not found", in: gorm.ErrRecordNotFound, want: repo.ErrNotFound},
		{name: "unique", in: &pgconn.PgError{Code: "23505"}, want: repo.ErrDuplicate},
		{name: "wrapped unique", in: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: repo.ErrDuplicate},
		{name: "fk restrict", in: &pgconn.PgError{Code: "23503"}, want: repo.ErrHasDependents},
		{name: "other pg error", in: &pgconn.PgError{Code: "40001"}, want: nil},
		{name: "other", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.in)
			switch {
			case tt.in == nil:
				assert.NoError(t, got)
			case tt.want == nil:
				assert.Equal(t, tt.in, got)
			default:
				assert.ErrorIs(t, got, tt.want)
			}
		})
	}
}
