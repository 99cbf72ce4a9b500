package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/jhoicas/supermart-pos/internal/application/catalog"
	"github.com/jhoicas/supermart-pos/internal/application/directory"
	"github.com/jhoicas/supermart-pos/internal/application/sales"
	"github.com/jhoicas/supermart-pos/internal/domain"
	"github.com/jhoicas/supermart-pos/internal/infrastructure/flatfile"
	infrapdf "github.com/jhoicas/supermart-pos/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/supermart-pos/internal/interfaces/http"
	"github.com/jhoicas/supermart-pos/pkg/config"
	"github.com/jhoicas/supermart-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_dir", cfg.Store.DataDir).
		Msg("iniciando aplicación")

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("crear directorio de datos")
	}

	itemStore := flatfile.NewItemStore(fs, cfg.Store.DataDir)
	customerStore := flatfile.NewCustomerStore(fs, cfg.Store.DataDir)
	supplierStore := flatfile.NewSupplierStore(fs, cfg.Store.DataDir)
	salesLog := flatfile.NewSalesLog(fs, cfg.Store.DataDir)

	catalogUC, err := catalog.NewUseCase(itemStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo")
	}
	directoryUC, err := directory.NewUseCase(customerStore, supplierStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar directorio")
	}
	seedIfEmpty(catalogUC, directoryUC, log)

	ledger := sales.NewLedger(salesLog, log)
	session := sales.NewSession(catalogUC, directoryUC, ledger, log)
	receipts := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		DirectoryUC: directoryUC,
		Session:     session,
		Ledger:      ledger,
		Receipts:    receipts,
		TaxRate:     cfg.POS.TaxRate,
		Showroom:    cfg.POS.Showroom,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Una factura abierta al salir se descarta para devolver sus reservas.
	if err := session.Discard(); err != nil && !errors.Is(err, domain.ErrInvalidState) {
		log.Error().Err(err).Msg("descartar factura en curso")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedIfEmpty carga los datos de demostración de la tienda cuando los tres
// almacenes arrancan vacíos (primer arranque sin archivos de datos).
func seedIfEmpty(catalogUC *catalog.UseCase, directoryUC *directory.UseCase, log *logger.Logger) {
	if len(catalogUC.List()) > 0 || len(directoryUC.Customers()) > 0 || len(directoryUC.Suppliers()) > 0 {
		return
	}
	log.Info().Msg("almacenes vacíos: cargando datos de demostración")

	items := []struct {
		id    int
		name  string
		price string
		stock int
	}{
		{101, "Apple iPhone 14", "999.00", 10},
		{102, "Samsung Galaxy S23", "899.00", 8},
		{103, "Dell Inspiron 15", "1199.00", 5},
		{104, "HP LaserJet Pro", "249.00", 12},
		{105, "Logitech MX Master 3", "99.00", 20},
	}
	for _, it := range items {
		price, _ := decimal.NewFromString(it.price)
		if _, err := catalogUC.AddItem(it.id, it.name, price, it.stock); err != nil {
			log.Warn().Err(err).Int("item_id", it.id).Msg("seed de item falló")
		}
	}
	for _, name := range []string{"John Doe", "Jane Smith", "Ibrahim Khan"} {
		if _, err := directoryUC.AddCustomer(name); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("seed de cliente falló")
		}
	}
	for _, name := range []string{"TechWorld Distributors", "Global Gadgets Ltd.", "Mega Electronics PLC"} {
		if err := directoryUC.AddSupplier(name); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("seed de proveedor falló")
		}
	}
}
