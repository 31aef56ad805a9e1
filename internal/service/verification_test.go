package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack/internal/models"
)

func persistedCheckin() *models.Checkin {
	checkin := &models.Checkin{UserID: 1, WorksiteID: 2}
	checkin.ID = 5
	return checkin
}

func TestAttach(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVerificationService(db)

	mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "verification_images"`).
		WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "verification_images"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	img, err := svc.Attach(context.Background(), persistedCheckin(), 1, 2, "verification_1_abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, uint(5), img.CheckinID)
	assert.Equal(t, "verification_1_abc.jpg", img.Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachSecondImageConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVerificationService(db)

	mock.ExpectQuery(`(?i)SELECT count\(\*\) FROM "verification_images"`).
		WillReturnRows(countRows(1))

	_, err := svc.Attach(context.Background(), persistedCheckin(), 1, 2, "verification_1_def.jpg")
	assert.ErrorIs(t, err, ErrImageConflict)
	// No insert was attempted; the original association is untouched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachOwnershipMismatch(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewVerificationService(db)

	_, err := svc.Attach(context.Background(), persistedCheckin(), 3, 2, "key.jpg")
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = svc.Attach(context.Background(), persistedCheckin(), 1, 9, "key.jpg")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestAttachUnpersistedCheckin(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewVerificationService(db)

	_, err := svc.Attach(context.Background(), &models.Checkin{UserID: 1, WorksiteID: 2}, 1, 2, "key.jpg")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestResolveURL(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewVerificationService(db)

	img := &models.VerificationImage{Image: "verification_1_abc.jpg"}
	assert.Equal(t,
		"http://example.com/media/verification_images/verification_1_abc.jpg",
		svc.ResolveURL(img, "http://example.com"))

	// No request context means no URL, never an error.
	assert.Equal(t, "", svc.ResolveURL(img, ""))
}
