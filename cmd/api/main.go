package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/receiptbook-api/internal/application/service"
	"github.com/sangkips/receiptbook-api/internal/config"
	"github.com/sangkips/receiptbook-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/receiptbook-api/internal/domain/repository"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/database"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/memory"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/repository"
	"github.com/sangkips/receiptbook-api/internal/infrastructure/scheduler"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/handler"
	"github.com/sangkips/receiptbook-api/internal/presentation/http/routes"
	"github.com/sangkips/receiptbook-api/pkg/printer"
	"github.com/sangkips/receiptbook-api/pkg/utils"
)

// repositories is the set of stores the services run on
type repositories struct {
	receipts     domainRepo.ReceiptRepository
	serviceItems domainRepo.ServiceItemRepository
	customers    domainRepo.CustomerRepository
	profiles     domainRepo.ProfileRepository
	roles        domainRepo.RoleRepository
	idempotency  domainRepo.IdempotencyRepository
}

func openStore(cfg *config.Config, policy ledger.Policy) (*repositories, error) {
	if cfg.Store.Driver == "memory" {
		log.Println("Using in-memory store; data is lost on restart")
		db, err := memory.NewDB(cfg.Store.NodeID)
		if err != nil {
			return nil, err
		}
		return &repositories{
			receipts:     memory.NewReceiptRepository(db),
			serviceItems: memory.NewServiceItemRepository(db),
			customers:    memory.NewCustomerRepository(db),
			profiles:     memory.NewProfileRepository(db),
			roles:        memory.NewRoleRepository(db),
			idempotency:  memory.NewIdempotencyRepository(db),
		}, nil
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := database.SeedDefaultData(db, cfg.Admin.UserID); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	return &repositories{
		receipts:     repository.NewReceiptRepository(db, policy),
		serviceItems: repository.NewServiceItemRepository(db),
		customers:    repository.NewCustomerRepository(db),
		profiles:     repository.NewProfileRepository(db),
		roles:        repository.NewRoleRepository(db),
		idempotency:  repository.NewIdempotencyRepository(db),
	}, nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	policy, err := ledger.NewPolicy(cfg.Ledger.ZeroTotalStatus)
	if err != nil {
		log.Fatalf("Invalid LEDGER_ZERO_TOTAL_STATUS: %v", err)
	}

	repos, err := openStore(cfg, policy)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Driver, err)
	}

	// Initialize services
	catalogService := service.NewCatalogService(repos.serviceItems, repos.customers)
	receiptService := service.NewReceiptService(repos.receipts, catalogService, policy, cfg.Ledger.ReceiptPrefix)
	exportService := service.NewExportService(receiptService, cfg.Ledger.CurrencySymbol)
	profileService := service.NewProfileService(repos.profiles)
	roleService := service.NewRoleService(repos.roles)
	dashboardService := service.NewDashboardService(repos.receipts)

	if err := roleService.SeedAdmin(context.Background(), cfg.Admin.UserID); err != nil {
		log.Printf("Warning: Failed to seed admin role: %v", err)
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.Discard{}
	}
	printerService := service.NewPrinterService(
		thermalPrinter,
		receiptService,
		repos.profiles,
		cfg.Printer.Type,
		cfg.Printer.Width,
		cfg.Ledger.CurrencySymbol,
	)

	// Purge expired idempotency keys
	cleaner, err := scheduler.NewIdempotencyCleaner(repos.idempotency, cfg.Idempotency.CleanupSchedule)
	if err != nil {
		log.Fatalf("Failed to create cleanup scheduler: %v", err)
	}
	cleaner.Start()

	handlers := &routes.Handlers{
		Receipt:   handler.NewReceiptHandler(receiptService, exportService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Profile:   handler.NewProfileHandler(profileService),
		Role:      handler.NewRoleHandler(roleService),
		Printer:   handler.NewPrinterHandler(printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours),
		Cfg:             cfg,
		RoleService:     roleService,
		IdempotencyRepo: repos.idempotency,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, store: %s", cfg.App.Env, cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	cleaner.Stop()
	log.Println("Server exited")
}
