package config

import (
	"log"
	"time"

	"koperasi-adminhub/internal/adapters/persistence/models"
	"koperasi-adminhub/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedSavingsProducts(); err != nil {
		log.Printf("⚠️ Savings product seeder skipped: %v", err)
	}
	if err := s.seedTariffs(); err != nil {
		log.Printf("⚠️ Tariff seeder skipped: %v", err)
	}
	if err := s.seedAssetCategories(); err != nil {
		log.Printf("⚠️ Asset category seeder skipped: %v", err)
	}
	if err := s.seedScoringCriteria(); err != nil {
		log.Printf("⚠️ Scoring seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		FullName: "Administrator",
		Email:    "admin@koperasi.example.id",
		Password: hashedPassword,
		Role:     "ADMIN",
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}

// seedSavingsProducts seeds the default savings products
func (s *Seeder) seedSavingsProducts() error {
	var count int64
	s.db.Model(&models.SavingsProduct{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []models.SavingsProduct{
		{Code: "SP-POKOK", Name: "Simpanan Pokok", InterestRate: 0, MinBalance: 100000, AdminFee: 0, IsActive: true},
		{Code: "SP-WAJIB", Name: "Simpanan Wajib", InterestRate: 0, MinBalance: 50000, AdminFee: 0, IsActive: true},
		{Code: "SP-SUKA", Name: "Simpanan Sukarela", InterestRate: 3.00, MinBalance: 0, AdminFee: 2500, IsActive: true},
	}

	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d savings products", len(products))
	return nil
}

// seedTariffs seeds time deposit interest rate tariffs
func (s *Seeder) seedTariffs() error {
	var count int64
	s.db.Model(&models.InterestRateTariff{}).Count(&count)
	if count > 0 {
		return nil
	}

	from := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.Local)
	tariffs := []models.InterestRateTariff{
		{Code: "SB-3", Name: "Simpanan Berjangka 3 Bulan", TermMonths: 3, Rate: 4.50, EffectiveFrom: &from, IsActive: true},
		{Code: "SB-6", Name: "Simpanan Berjangka 6 Bulan", TermMonths: 6, Rate: 5.00, EffectiveFrom: &from, IsActive: true},
		{Code: "SB-12", Name: "Simpanan Berjangka 12 Bulan", TermMonths: 12, Rate: 5.75, EffectiveFrom: &from, IsActive: true},
	}

	if err := s.db.Create(&tariffs).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d deposit tariffs", len(tariffs))
	return nil
}

// seedAssetCategories seeds asset categories and a head office location
func (s *Seeder) seedAssetCategories() error {
	var count int64
	s.db.Model(&models.AssetCategory{}).Count(&count)
	if count > 0 {
		return nil
	}

	categories := []models.AssetCategory{
		{Code: "AC-ELEK", Name: "Elektronik", UsefulLifeMonths: 48, ResidualPercent: 10, IsActive: true},
		{Code: "AC-MEJA", Name: "Perabot Kantor", UsefulLifeMonths: 96, ResidualPercent: 5, IsActive: true},
		{Code: "AC-KEND", Name: "Kendaraan", UsefulLifeMonths: 96, ResidualPercent: 20, IsActive: true},
	}
	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	location := models.AssetLocation{Code: "LOC-HO", Name: "Kantor Pusat", IsActive: true}
	if err := s.db.Create(&location).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d asset categories", len(categories))
	return nil
}

// seedScoringCriteria seeds a criteria set whose weights sum to 100
func (s *Seeder) seedScoringCriteria() error {
	var count int64
	s.db.Model(&models.ScoringCriterion{}).Count(&count)
	if count > 0 {
		return nil
	}

	criteria := []models.ScoringCriterion{
		{
			Code: "SCR-TENURE", Name: "Lama Keanggotaan", WeightPercent: 30, IsActive: true,
			Rules: []models.ScoringRule{
				{Operator: models.RuleOpLT, BoundLow: 12, Points: 40, IsActive: true},
				{Operator: models.RuleOpBetween, BoundLow: 12, BoundHigh: 36, Points: 70, IsActive: true},
				{Operator: models.RuleOpGT, BoundLow: 36, Points: 100, IsActive: true},
			},
		},
		{
			Code: "SCR-SAVING", Name: "Saldo Simpanan", WeightPercent: 40, IsActive: true,
			Rules: []models.ScoringRule{
				{Operator: models.RuleOpLT, BoundLow: 1000000, Points: 40, IsActive: true},
				{Operator: models.RuleOpBetween, BoundLow: 1000000, BoundHigh: 10000000, Points: 70, IsActive: true},
				{Operator: models.RuleOpGT, BoundLow: 10000000, Points: 100, IsActive: true},
			},
		},
		{
			Code: "SCR-ARREAR", Name: "Riwayat Tunggakan", WeightPercent: 30, IsActive: true,
			Rules: []models.ScoringRule{
				{Operator: models.RuleOpLTE, BoundLow: 0, Points: 100, IsActive: true},
				{Operator: models.RuleOpBetween, BoundLow: 1, BoundHigh: 2, Points: 60, IsActive: true},
				{Operator: models.RuleOpGT, BoundLow: 2, Points: 20, IsActive: true},
			},
		},
	}

	if err := s.db.Create(&criteria).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d scoring criteria", len(criteria))
	return nil
}
