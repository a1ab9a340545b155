package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	portsrepo "github.com/SscSPs/waste_approval_app/internal/core/ports/repositories"
	"github.com/SscSPs/waste_approval_app/internal/models"
	"github.com/SscSPs/waste_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxDirectoryRepository reads the user and production line directories.
type PgxDirectoryRepository struct {
	BaseRepository
}

func newPgxDirectoryRepository(db querier) *PgxDirectoryRepository {
	return &PgxDirectoryRepository{BaseRepository: BaseRepository{DB: db}}
}

var (
	_ portsrepo.UserDirectory = (*PgxDirectoryRepository)(nil)
	_ portsrepo.LineDirectory = (*PgxDirectoryRepository)(nil)
)

func (r *PgxDirectoryRepository) FindProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	rows, err := r.DB.Query(ctx, `SELECT user_id, name, email, role FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query user", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to read user "+userID, err)
	}
	profile := mapping.ToDomainUserProfile(m)
	return &profile, nil
}

func (r *PgxDirectoryRepository) FindLineByID(ctx context.Context, lineID string) (*domain.ProductionLine, error) {
	rows, err := r.DB.Query(ctx, `SELECT line_id, name, form_approver_id FROM production_lines WHERE line_id = $1`, lineID)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query production line", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ProductionLine])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to read production line "+lineID, err)
	}
	line := mapping.ToDomainProductionLine(m)
	return &line, nil
}
