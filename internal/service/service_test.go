package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/unitofwork"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled :memory: connection would open a fresh empty database per
	// connection, so pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Notebook{},
		&model.Note{},
		&model.NoteVersion{},
		&model.Tag{},
		&model.Shortcut{},
	))

	return db
}

func newTestFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return unitofwork.NewRepositoryFactory(db), db
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	hash := "$2a$10$notacheckedhash"
	require.NoError(t, db.Create(&model.User{
		Id:           id,
		Email:        fmt.Sprintf("%s@example.com", id.String()[:8]),
		PasswordHash: &hash,
		FullName:     "Test User",
		Role:         "user",
		Status:       "active",
	}).Error)
	return id
}

func seedNotebook(t *testing.T, db *gorm.DB, userId uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&model.Notebook{
		Id:     id,
		Name:   "Inbox",
		UserId: userId,
	}).Error)
	return id
}

func createNote(t *testing.T, svc INoteService, userId, notebookId uuid.UUID, title, content string) uuid.UUID {
	t.Helper()
	res, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:      title,
		Content:    content,
		NotebookId: notebookId,
	})
	require.NoError(t, err)
	return res.Id
}

func strPtr(s string) *string { return &s }

// fakeMailer records sent reminders and can be told to fail for specific
// recipient addresses.
type fakeMailer struct {
	reminders []string
	failFor   map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]bool{}}
}

func (m *fakeMailer) SendWelcome(toEmail, fullName string) error {
	return nil
}

func (m *fakeMailer) SendReminder(toEmail, noteTitle string, dueAt time.Time) error {
	if m.failFor[toEmail] {
		return fmt.Errorf("smtp rejected %s", toEmail)
	}
	m.reminders = append(m.reminders, toEmail)
	return nil
}
