package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func TestSavingsAccountRepositoryGetByAccountNo(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSavingsAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `savings_accounts` WHERE account_no = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_no", "member_id", "balance"}).
			AddRow(3, "TAB-202501-0003", 9, 150000))

	account, err := repo.GetByAccountNo(context.Background(), "TAB-202501-0003")
	if err != nil {
		t.Fatalf("GetByAccountNo() error = %v", err)
	}
	if account.ID != 3 || account.AccountNo != "TAB-202501-0003" {
		t.Errorf("account = %+v, want ID 3 with the requested number", account)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSavingsAccountRepositoryGetByAccountNoMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSavingsAccountRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `savings_accounts` WHERE account_no = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByAccountNo(context.Background(), "TAB-000000-0000")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("GetByAccountNo() error = %v, want ErrRecordNotFound", err)
	}
}

func TestAccrualRepositoryListByBilyet(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccrualRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `interest_accruals` WHERE bilyet_id = ? ORDER BY period ASC")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bilyet_id", "period", "days", "amount"}).
			AddRow(1, 7, "2025-01", 17, 23288).
			AddRow(2, 7, "2025-02", 28, 38356))

	accruals, err := repo.ListByBilyet(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByBilyet() error = %v", err)
	}
	if len(accruals) != 2 {
		t.Fatalf("len(accruals) = %d, want 2", len(accruals))
	}
	if accruals[0].Period != "2025-01" || accruals[1].Period != "2025-02" {
		t.Errorf("periods = %s, %s, want oldest first", accruals[0].Period, accruals[1].Period)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAccrualRepositorySumByPeriod(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAccrualRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(SUM(amount), 0) FROM `interest_accruals` WHERE period = ?")).
		WithArgs("2025-01").
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(amount), 0)"}).AddRow(61644))

	sum, err := repo.SumByPeriod(context.Background(), "2025-01")
	if err != nil {
		t.Fatalf("SumByPeriod() error = %v", err)
	}
	if sum != 61644 {
		t.Errorf("SumByPeriod() = %d, want 61644", sum)
	}
}
