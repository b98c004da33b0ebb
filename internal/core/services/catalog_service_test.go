package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
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

	svc := NewCatalogService(
		repositories.NewSavingsProductRepository(db),
		repositories.NewLoanCategoryRepository(db),
		repositories.NewTariffRepository(db),
		repositories.NewAssetCategoryRepository(db),
		repositories.NewAssetLocationRepository(db),
	)
	return svc, mock
}

const productCodeCountSQL = "SELECT count(*) FROM `savings_products` WHERE code = ? AND `savings_products`.`deleted_at` IS NULL"

func TestCreateSavingsProductDuplicateCode(t *testing.T) {
	svc, mock := newMockCatalogService(t)

	mock.ExpectQuery(regexp.QuoteMeta(productCodeCountSQL)).
		WithArgs("SP-001").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	_, err := svc.CreateSavingsProduct(context.Background(), &SavingsProductInput{
		Code:         "SP-001",
		Name:         "Simpanan Pokok",
		InterestRate: 2.5,
	})
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Errorf("CreateSavingsProduct() error = %v, want ErrDuplicateEntry", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateSavingsProductCodeCheckFailure(t *testing.T) {
	// A failing duplicate check must surface the database error,
	// not fall through to the insert as if the code were free.
	svc, mock := newMockCatalogService(t)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(productCodeCountSQL)).
		WithArgs("SP-001").
		WillReturnError(dbErr)

	_, err := svc.CreateSavingsProduct(context.Background(), &SavingsProductInput{
		Code:         "SP-001",
		Name:         "Simpanan Pokok",
		InterestRate: 2.5,
	})
	if !errors.Is(err, dbErr) {
		t.Errorf("CreateSavingsProduct() error = %v, want the database error", err)
	}
	if errors.Is(err, domain.ErrDuplicateEntry) {
		t.Error("CreateSavingsProduct() reported a duplicate on a failed check")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateSavingsProductKeepsOwnCode(t *testing.T) {
	// Saving a product without changing its code must not trip the
	// duplicate check against its own row.
	svc, mock := newMockCatalogService(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `savings_products` WHERE `savings_products`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "interest_rate"}).
			AddRow(5, "SP-001", "Simpanan Pokok", 2.5))
	mock.ExpectExec("UPDATE `savings_products`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	product, err := svc.UpdateSavingsProduct(context.Background(), 5, &SavingsProductInput{
		Code:         "SP-001",
		Name:         "Simpanan Pokok Baru",
		InterestRate: 3.0,
	})
	if err != nil {
		t.Fatalf("UpdateSavingsProduct() error = %v", err)
	}
	if product.Name != "Simpanan Pokok Baru" {
		t.Errorf("Name = %q, want the updated name", product.Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
