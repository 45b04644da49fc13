package api

import (
	"errors"

	"go-3pl-warehouse/internal/config"
	"go-3pl-warehouse/internal/handler"
	"go-3pl-warehouse/internal/middleware"
	"go-3pl-warehouse/internal/repository"
	"go-3pl-warehouse/internal/service"
	"go-3pl-warehouse/internal/upc"
	"go-3pl-warehouse/internal/ws"
	"go-3pl-warehouse/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options carries what New needs to wire the app. UPC defaults to the
// UPCItemDB then Open Food Facts chain built from Config.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Hub    *ws.Hub
	UPC    service.UPCLookup
}

// New wires repositories, services and handlers onto a fiber app
func New(opts Options) (*fiber.App, error) {
	cfg, db, hub := opts.Config, opts.DB, opts.Hub
	if cfg == nil || db == nil || hub == nil {
		return nil, errors.New("api: config, db and hub are required")
	}

	lookup := opts.UPC
	if lookup == nil {
		lookup = upc.NewService(
			&upc.UPCItemDB{BaseURL: cfg.UPCItemDBURL, Timeout: cfg.UPCTimeout},
			&upc.OpenFoodFacts{BaseURL: cfg.OpenFoodFactsURL, Timeout: cfg.UPCTimeout},
		)
	}

	// Repositories
	clientRepo := repository.NewClientRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	boxRepo := repository.NewBoxRepo(db)
	shipmentRepo := repository.NewShipmentRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Services
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo, txRepo, db, hub)
	boxService := service.NewBoxService(boxRepo)
	invService := service.NewInventoryService(productRepo, txRepo, db, hub)
	shipmentService := service.NewShipmentService(shipmentRepo, boxRepo, clientRepo, productRepo, txRepo, db, hub)
	catalogService := service.NewCatalogService(productRepo, lookup, cfg.BackfillDelay)
	dashService := service.NewDashboardService(txRepo)

	// Handlers
	clientHandler := handler.NewClientHandler(clientService)
	productHandler := handler.NewProductHandler(productService)
	boxHandler := handler.NewBoxHandler(boxService)
	txHandler := handler.NewTransactionHandler(invService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	upcHandler := handler.NewUPCHandler(catalogService)
	dashHandler := handler.NewDashboardHandler(dashService)
	healthHandler := handler.NewHealthHandler(cfg.Environment)

	app := fiber.New(fiber.Config{
		AppName:      "3PL Warehouse API",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if cfg.Environment != "test" {
		app.Use(logger.New())
	}

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Get("/health", healthHandler.Health)

	protected := api
	if cfg.AuthEnabled {
		signer := jwt.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
		authService := service.NewAuthService(userRepo, signer)
		if err := authService.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return nil, err
		}
		authHandler := handler.NewAuthHandler(authService)

		auth := api.Group("/auth")
		auth.Post("/login", authHandler.Login)
		auth.Post("/validate-token", authHandler.ValidateToken)

		protected = api.Group("", middleware.RequireAuth(signer, userRepo))
	}

	// Client Routes
	protected.Get("/clients", clientHandler.GetClients)
	protected.Post("/clients", clientHandler.CreateClient)
	protected.Get("/clients/:id", clientHandler.GetClient)
	protected.Put("/clients/:id", clientHandler.UpdateClient)
	protected.Delete("/clients/:id", clientHandler.DeleteClient)

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Get("/products/upc/:upc", productHandler.GetProductByUPC)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Transaction Routes
	protected.Get("/transactions", txHandler.GetTransactions)
	protected.Get("/transactions/product/:productId", txHandler.GetProductTransactions)
	protected.Post("/transactions/inbound", txHandler.Inbound)
	protected.Post("/transactions/inbound/batch", txHandler.InboundBatch)
	protected.Post("/transactions/outbound", txHandler.Outbound)

	// Shipment Routes
	protected.Get("/shipments", shipmentHandler.GetShipments)
	protected.Post("/shipments", shipmentHandler.CreateShipment)
	protected.Post("/shipments/shipment-items", shipmentHandler.CreateShipmentItem)
	protected.Post("/shipments/quote", shipmentHandler.Quote)
	protected.Post("/shipments/fulfill", shipmentHandler.Fulfill)
	protected.Get("/shipments/:id", shipmentHandler.GetShipment)
	protected.Get("/shipments/:id/items", shipmentHandler.GetShipmentItems)

	// Box Routes
	protected.Get("/boxes", boxHandler.GetBoxes)
	protected.Post("/boxes", boxHandler.CreateBox)
	protected.Get("/boxes/barcode/:barcode", boxHandler.GetBoxByBarcode)
	protected.Get("/boxes/:id", boxHandler.GetBox)
	protected.Put("/boxes/:id", boxHandler.UpdateBox)
	protected.Delete("/boxes/:id", boxHandler.DeleteBox)

	// UPC Routes
	protected.Get("/upc/lookup/:upc", upcHandler.Lookup)
	protected.Get("/upc/:upc", upcHandler.Lookup)
	protected.Post("/fix/update-product-names", upcHandler.UpdateProductNames)

	// Dashboard Routes
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Register(c) {
			return
		}
		defer hub.Unregister(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// Dashboard assets, falling back to a plain banner on /
	app.Static("/", cfg.PublicDir)
	app.Get("/", healthHandler.Banner)

	return app, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		logrus.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}
