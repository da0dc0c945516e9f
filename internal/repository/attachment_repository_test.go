package repository_test

import (
	"context"
	"testing"
	"time"

	"classroom/internal/model"
	"classroom/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAttachmentRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewAttachmentRepository(gormDB)

	content := "my answer"
	attachment := &model.Attachment{
		ID:            uuid.New(),
		AssignmentID:  uuid.New(),
		UserID:        uuid.New(),
		Content:       &content,
		SubmittedTime: time.Now(),
		Point:         model.DefaultPoint,
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "attachments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Create(context.Background(), attachment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_GetByAssignmentID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewAttachmentRepository(gormDB)

	assignmentID := uuid.New()
	columns := []string{"id", "assignment_id", "user_id", "content", "attachment_path", "submitted_time", "point", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT \* FROM "attachments" WHERE assignment_id = .* ORDER BY submitted_time DESC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.New().String(), assignmentID.String(), uuid.New().String(), nil, "https://cdn/x.pdf", time.Now(), "0", time.Now(), time.Now()))

	attachments, err := repo.GetByAssignmentID(context.Background(), assignmentID)

	assert.NoError(t, err)
	assert.Len(t, attachments, 1)
	assert.Equal(t, assignmentID, attachments[0].AssignmentID)
	assert.Nil(t, attachments[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewAttachmentRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "attachments" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	attachment, err := repo.GetByID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, attachment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachmentRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewAttachmentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "attachments" WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrAttachmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
