package routes

import (
	"koperasi-adminhub/internal/adapters/http/handlers"
	"koperasi-adminhub/internal/adapters/http/middleware"
	"koperasi-adminhub/internal/adapters/persistence/repositories"
	"koperasi-adminhub/internal/config"
	"koperasi-adminhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services, and handlers onto the app.
// It returns the services needed by the scheduler.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*services.ClosingService, *services.AutoDebitService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	docRepo := repositories.NewMemberDocumentRepository(db)
	claimRepo := repositories.NewDeathClaimRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	productRepo := repositories.NewSavingsProductRepository(db)
	loanCatRepo := repositories.NewLoanCategoryRepository(db)
	tariffRepo := repositories.NewTariffRepository(db)
	assetCatRepo := repositories.NewAssetCategoryRepository(db)
	locationRepo := repositories.NewAssetLocationRepository(db)
	accountRepo := repositories.NewSavingsAccountRepository(db)
	bilyetRepo := repositories.NewBilyetRepository(db)
	accrualRepo := repositories.NewAccrualRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	deprRepo := repositories.NewDepreciationRepository(db)
	scoringRepo := repositories.NewScoringRepository(db)
	shuRepo := repositories.NewSHURepository(db)
	closingRunRepo := repositories.NewClosingRunRepository(db)
	autoDebitRepo := repositories.NewAutoDebitRepository(db)
	importRunRepo := repositories.NewImportRunRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	memberService := services.NewMemberService(memberRepo, docRepo, claimRepo, auditRepo)
	catalogService := services.NewCatalogService(productRepo, loanCatRepo, tariffRepo, assetCatRepo, locationRepo)
	depositService := services.NewDepositService(accountRepo, bilyetRepo, accrualRepo, tariffRepo, memberRepo, productRepo)
	assetService := services.NewAssetService(assetRepo, deprRepo, assetCatRepo, locationRepo)
	scoringService := services.NewScoringService(scoringRepo)
	shuService := services.NewSHUService(shuRepo, accountRepo, memberRepo)
	closingService := services.NewClosingService(closingRunRepo, bilyetRepo, accrualRepo, assetRepo, deprRepo, auditRepo)
	autoDebitService := services.NewAutoDebitService(autoDebitRepo, accountRepo)
	importService := services.NewImportService(memberService, memberRepo, bilyetRepo, importRunRepo)
	dashboardService := services.NewDashboardService(memberRepo, claimRepo, accountRepo, bilyetRepo, assetRepo, closingRunRepo, auditRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	depositHandler := handlers.NewDepositHandler(depositService)
	assetHandler := handlers.NewAssetHandler(assetService, cfg)
	scoringHandler := handlers.NewScoringHandler(scoringService)
	shuHandler := handlers.NewSHUHandler(shuService)
	closingHandler := handlers.NewClosingHandler(closingService, autoDebitService)
	importHandler := handlers.NewImportHandler(importService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Get("/auth/me", authHandler.Me)

	// Operator self-service
	protected.Put("/users/me", userHandler.UpdateProfile)
	protected.Put("/users/me/password", userHandler.ChangePassword)

	// Operator management, admin only
	users := protected.Group("/users", middleware.AdminOnly())
	users.Post("/", userHandler.CreateUser)
	users.Get("/", userHandler.ListUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	// Members
	members := protected.Group("/members", middleware.OfficerOrAdmin())
	members.Post("/", memberHandler.CreateMember)
	members.Get("/", memberHandler.ListMembers)
	members.Get("/documents/:docId", memberHandler.DownloadDocument)
	members.Delete("/documents/:docId", memberHandler.DeleteDocument)
	members.Get("/:id", memberHandler.GetMember)
	members.Put("/:id", memberHandler.UpdateMember)
	members.Delete("/:id", middleware.AdminOnly(), memberHandler.DeleteMember)
	members.Post("/:id/approve", memberHandler.ApproveMember)
	members.Post("/:id/reject", memberHandler.RejectMember)
	members.Get("/:id/audit", memberHandler.GetMemberAudit)
	members.Post("/:id/documents", memberHandler.UploadDocument)
	members.Get("/:id/documents", memberHandler.ListDocuments)

	// Death claims
	claims := protected.Group("/death-claims", middleware.OfficerOrAdmin())
	claims.Post("/", memberHandler.CreateDeathClaim)
	claims.Get("/", memberHandler.ListDeathClaims)
	claims.Get("/:id", memberHandler.GetDeathClaim)
	claims.Post("/:id/approve", memberHandler.ApproveDeathClaim)
	claims.Post("/:id/reject", memberHandler.RejectDeathClaim)

	// Master data catalogs, writes are admin only
	catalog := protected.Group("/catalog", middleware.OfficerOrAdmin())
	catalogRead := catalog.Group("", middleware.MasterDataCache())
	catalogRead.Get("/savings-products", catalogHandler.ListSavingsProducts)
	catalogRead.Get("/savings-products/:id", catalogHandler.GetSavingsProduct)
	catalogRead.Get("/loan-categories", catalogHandler.ListLoanCategories)
	catalogRead.Get("/loan-categories/:id", catalogHandler.GetLoanCategory)
	catalogRead.Get("/tariffs", catalogHandler.ListTariffs)
	catalogRead.Get("/tariffs/:id", catalogHandler.GetTariff)
	catalogRead.Get("/asset-categories", catalogHandler.ListAssetCategories)
	catalogRead.Get("/asset-categories/:id", catalogHandler.GetAssetCategory)
	catalogRead.Get("/asset-locations", catalogHandler.ListAssetLocations)
	catalogRead.Get("/asset-locations/:id", catalogHandler.GetAssetLocation)

	catalogWrite := catalog.Group("", middleware.AdminOnly())
	catalogWrite.Post("/savings-products", catalogHandler.CreateSavingsProduct)
	catalogWrite.Put("/savings-products/:id", catalogHandler.UpdateSavingsProduct)
	catalogWrite.Delete("/savings-products/:id", catalogHandler.DeleteSavingsProduct)
	catalogWrite.Post("/loan-categories", catalogHandler.CreateLoanCategory)
	catalogWrite.Put("/loan-categories/:id", catalogHandler.UpdateLoanCategory)
	catalogWrite.Delete("/loan-categories/:id", catalogHandler.DeleteLoanCategory)
	catalogWrite.Post("/tariffs", catalogHandler.CreateTariff)
	catalogWrite.Put("/tariffs/:id", catalogHandler.UpdateTariff)
	catalogWrite.Delete("/tariffs/:id", catalogHandler.DeleteTariff)
	catalogWrite.Post("/asset-categories", catalogHandler.CreateAssetCategory)
	catalogWrite.Put("/asset-categories/:id", catalogHandler.UpdateAssetCategory)
	catalogWrite.Delete("/asset-categories/:id", catalogHandler.DeleteAssetCategory)
	catalogWrite.Post("/asset-locations", catalogHandler.CreateAssetLocation)
	catalogWrite.Put("/asset-locations/:id", catalogHandler.UpdateAssetLocation)
	catalogWrite.Delete("/asset-locations/:id", catalogHandler.DeleteAssetLocation)

	// Savings accounts
	savings := protected.Group("/savings", middleware.OfficerOrAdmin())
	savings.Post("/accounts", depositHandler.OpenAccount)
	savings.Get("/accounts", depositHandler.ListAccounts)
	savings.Get("/accounts/number/:accountNo", depositHandler.GetAccountByNumber)
	savings.Get("/accounts/:id", depositHandler.GetAccount)
	savings.Post("/accounts/:id/deposit", depositHandler.Deposit)
	savings.Post("/accounts/:id/withdraw", depositHandler.Withdraw)
	savings.Get("/accounts/:id/transactions", depositHandler.ListTransactions)

	// Time deposits
	deposits := protected.Group("/time-deposits", middleware.OfficerOrAdmin())
	deposits.Post("/", depositHandler.OpenBilyet)
	deposits.Get("/", depositHandler.ListBilyets)
	deposits.Get("/accruals", depositHandler.ListAccruals)
	deposits.Get("/:id", depositHandler.GetBilyet)
	deposits.Post("/:id/close", depositHandler.CloseBilyet)
	deposits.Get("/:id/interest", depositHandler.GetBilyetInterest)

	// Fixed assets
	assets := protected.Group("/assets", middleware.OfficerOrAdmin())
	assets.Post("/", assetHandler.CreateAsset)
	assets.Get("/", assetHandler.ListAssets)
	assets.Get("/:id", assetHandler.GetAsset)
	assets.Put("/:id", assetHandler.UpdateAsset)
	assets.Put("/:id/image", assetHandler.UploadImage)
	assets.Delete("/:id", middleware.AdminOnly(), assetHandler.DeleteAsset)
	assets.Get("/:id/depreciation", assetHandler.GetDepreciationSchedule)

	// Loan eligibility scoring
	scoring := protected.Group("/scoring", middleware.OfficerOrAdmin())
	scoring.Post("/score", scoringHandler.Score)
	scoringAdmin := scoring.Group("/criteria", middleware.AdminOnly())
	scoringAdmin.Post("/", scoringHandler.CreateCriterion)
	scoringAdmin.Put("/:id", scoringHandler.UpdateCriterion)
	scoringAdmin.Delete("/:id", scoringHandler.DeleteCriterion)
	scoring.Get("/criteria", scoringHandler.ListCriteria)
	scoring.Get("/criteria/:id", scoringHandler.GetCriterion)

	// Annual surplus allocation, admin only
	shu := protected.Group("/shu/allocations", middleware.AdminOnly())
	shu.Post("/", shuHandler.CreateAllocation)
	shu.Get("/", shuHandler.ListAllocations)
	shu.Get("/:id", shuHandler.GetAllocation)
	shu.Put("/:id", shuHandler.UpdateAllocation)
	shu.Delete("/:id", shuHandler.DeleteAllocation)
	shu.Post("/:id/calculate", shuHandler.Calculate)
	shu.Post("/:id/distribute", shuHandler.Distribute)
	shu.Get("/:id/distributions", shuHandler.ListDistributions)

	// Period closing, admin only, run status always fresh
	closing := protected.Group("/closing", middleware.AdminOnly(), middleware.NoCacheHeaders())
	closing.Post("/month-end", closingHandler.TriggerMonthEnd)
	closing.Post("/year-end", closingHandler.TriggerYearEnd)
	closing.Get("/runs", closingHandler.ListClosingRuns)
	closing.Get("/runs/:id", closingHandler.GetClosingRun)

	autoDebit := protected.Group("/auto-debit", middleware.AdminOnly(), middleware.NoCacheHeaders())
	autoDebit.Post("/runs", closingHandler.TriggerAutoDebit)
	autoDebit.Get("/runs", closingHandler.ListAutoDebitRuns)
	autoDebit.Get("/runs/:id", closingHandler.GetAutoDebitRun)

	// Import and export
	imports := protected.Group("/import", middleware.OfficerOrAdmin())
	imports.Post("/members", importHandler.ImportMembers)
	imports.Get("/members/template", importHandler.DownloadTemplate)
	imports.Get("/members/export", importHandler.ExportMembers)
	imports.Get("/bilyets/export", importHandler.ExportBilyets)
	imports.Get("/runs", importHandler.ListImportRuns)

	// Dashboard
	dashboard := protected.Group("/dashboard", middleware.OfficerOrAdmin())
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/activity", dashboardHandler.RecentActivity)

	return closingService, autoDebitService
}
