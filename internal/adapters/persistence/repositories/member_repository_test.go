package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}

	return db, mock
}

func TestMemberRepositoryExistsByCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT count(*) FROM `members` WHERE code = ? AND `members`.`deleted_at` IS NULL")).
		WithArgs("AG-001").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.ExistsByCode(context.Background(), "AG-001")
	if err != nil {
		t.Fatalf("ExistsByCode() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByCode() = false, want true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMemberRepositoryDeleteMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	// Soft delete touches zero rows for an unknown id.
	mock.ExpectExec("UPDATE `members` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Delete() error = %v, want gorm.ErrRecordNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMemberRepositoryDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	mock.ExpectExec("UPDATE `members` SET `deleted_at`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplyMemberFilterOmittedFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	// An empty filter must not add any WHERE clause beyond soft delete.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT count(*) FROM `members` WHERE `members`.`deleted_at` IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `members` WHERE `members`.`deleted_at` IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := repo.List(context.Background(), &MemberFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestApplyMemberFilterStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMemberRepository(db)

	status := 1
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT count(*) FROM `members` WHERE status = ? AND `members`.`deleted_at` IS NULL")).
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery("SELECT \\* FROM `members` WHERE status = \\?").
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(1, 1).AddRow(2, 1))

	members, total, err := repo.List(context.Background(), &MemberFilter{Status: &status}, 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 || len(members) != 2 {
		t.Errorf("total = %d, len = %d, want 2 and 2", total, len(members))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
