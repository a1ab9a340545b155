package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// stubQuerier answers every statement with a fixed command tag or error.
type stubQuerier struct {
	tag pgconn.CommandTag
	err error
}

func (q *stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return q.tag, q.err
}

func (q *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (q *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (q *stubQuerier) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	if q.err != nil {
		return 0, q.err
	}
	return q.tag.RowsAffected(), nil
}

func (q *stubQuerier) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("not supported")
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, ConstraintName: "test_constraint"}
}

func testAudit() domain.AuditFields {
	now := time.Now().UTC()
	return domain.AuditFields{CreatedAt: now, CreatedBy: "u-admin", LastUpdatedAt: now, LastUpdatedBy: "u-admin", Version: 1}
}

func TestPgErrorCode(t *testing.T) {
	code, constraint := pgErrorCode(pgError(pgUniqueViolation))
	assert.Equal(t, pgUniqueViolation, code)
	assert.Equal(t, "test_constraint", constraint)

	code, _ = pgErrorCode(errors.Join(errors.New("insert failed"), pgError(pgForeignKeyViolation)))
	assert.Equal(t, pgForeignKeyViolation, code)

	code, constraint = pgErrorCode(errors.New("connection reset"))
	assert.Empty(t, code)
	assert.Empty(t, constraint)
}

func TestSaveAssignment_MapsConstraintViolations(t *testing.T) {
	ctx := context.Background()
	assignment := domain.ApprovalLevelAssignment{AssignmentID: "a-1", LevelID: "lvl-1", UserID: "u-qa", AuditFields: testAudit()}

	repo := newPgxApprovalLevelRepository(&stubQuerier{err: pgError(pgUniqueViolation)})
	assert.ErrorIs(t, repo.SaveAssignment(ctx, assignment), apperrors.ErrDuplicate)

	repo = newPgxApprovalLevelRepository(&stubQuerier{err: pgError(pgForeignKeyViolation)})
	assert.ErrorIs(t, repo.SaveAssignment(ctx, assignment), apperrors.ErrNotFound)

	repo = newPgxApprovalLevelRepository(&stubQuerier{err: errors.New("connection reset")})
	err := repo.SaveAssignment(ctx, assignment)
	assert.Error(t, err)
	assert.Equal(t, 500, apperrors.StatusCode(err))

	repo = newPgxApprovalLevelRepository(&stubQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")})
	assert.NoError(t, repo.SaveAssignment(ctx, assignment))
}

func TestSaveEntry_DuplicateKey(t *testing.T) {
	entry := domain.WasteEntry{
		EntryID:        "e-1",
		LineID:         "line-1",
		ProductID:      "p",
		Quantity:       decimal.RequireFromString("2.5"),
		Unit:           "kg",
		ApprovalStatus: domain.StatusPending,
		AuditFields:    testAudit(),
	}

	repo := newPgxWasteEntryRepository(&stubQuerier{err: pgError(pgUniqueViolation)})

	assert.ErrorIs(t, repo.SaveEntry(context.Background(), entry), apperrors.ErrDuplicate)
}

func TestUpdateEntryWorkflow_StaleVersionIsConflict(t *testing.T) {
	entry := domain.WasteEntry{EntryID: "e-1", ApprovalStatus: domain.StatusApproved, AuditFields: testAudit()}

	repo := newPgxWasteEntryRepository(&stubQuerier{tag: pgconn.NewCommandTag("UPDATE 0")})
	assert.ErrorIs(t, repo.UpdateEntryWorkflow(context.Background(), entry), apperrors.ErrConflict)

	repo = newPgxWasteEntryRepository(&stubQuerier{tag: pgconn.NewCommandTag("UPDATE 1")})
	assert.NoError(t, repo.UpdateEntryWorkflow(context.Background(), entry))
}

func TestRecordDecision_DecidedRowIsConflict(t *testing.T) {
	approvedBy := "u-qa"
	row := domain.WasteApproval{
		ApprovalID:  "w-1",
		EntryID:     "e-1",
		LevelID:     "lvl-1",
		Status:      domain.StatusApproved,
		ApprovedBy:  &approvedBy,
		AuditFields: testAudit(),
	}

	repo := newPgxWasteApprovalRepository(&stubQuerier{tag: pgconn.NewCommandTag("UPDATE 0")})
	assert.ErrorIs(t, repo.RecordDecision(context.Background(), row), apperrors.ErrConflict)

	repo = newPgxWasteApprovalRepository(&stubQuerier{tag: pgconn.NewCommandTag("UPDATE 1")})
	assert.NoError(t, repo.RecordDecision(context.Background(), row))
}

func TestSaveApprovals_DuplicateKey(t *testing.T) {
	rows := []domain.WasteApproval{{ApprovalID: "w-1", EntryID: "e-1", LevelID: "lvl-1", Status: domain.StatusPending, AuditFields: testAudit()}}

	repo := newPgxWasteApprovalRepository(&stubQuerier{err: pgError(pgUniqueViolation)})

	assert.ErrorIs(t, repo.SaveApprovals(context.Background(), rows), apperrors.ErrDuplicate)
}
