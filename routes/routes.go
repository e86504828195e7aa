package routes

import (
	"time"

	dtos "github.com/Open-Source-Life/AxolotlIndex/DTOs"
	"github.com/Open-Source-Life/AxolotlIndex/config"
	"github.com/Open-Source-Life/AxolotlIndex/middlewares"
	"github.com/Open-Source-Life/AxolotlIndex/services"
	"github.com/Open-Source-Life/AxolotlIndex/services/audit"
	publicfiles "github.com/Open-Source-Life/AxolotlIndex/services/public_files"
	systeminfo "github.com/Open-Source-Life/AxolotlIndex/services/system_info"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.Router, db *gorm.DB, cfg *config.Config) {
	(*app).Use(middlewares.Recovery())
	(*app).Use(middlewares.RequestID())
	(*app).Use(middlewares.Logger())
	(*app).Use(middlewares.CORS())
	(*app).Use(middlewares.RateLimiter(cfg.RateLimit))

	recorder := audit.NewRecorder(db)

	wsHub := publicfiles.NewWebSocketHub()
	go wsHub.Run()

	(*app).Get("/healthz", func(c *fiber.Ctx) error {
		return services.HealthCheck(c, recorder, wsHub)
	})

	publicFilesService := publicfiles.NewPublicFilesService(cfg.PublicDir, wsHub, systeminfo.NewCollector(cfg))
	if cfg.Debug {
		publicFilesService.EnableDebug()
	}
	wsHub.SetListingHandler(publicFilesService)

	(*app).Get("/files", func(c *fiber.Ctx) error {
		start := time.Now()
		items, errResp := publicFilesService.ListItems(middlewares.GetRequestID(c))
		if errResp != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(errResp)
		}
		recorder.Record(audit.ListingRequest{
			Endpoint:   "files",
			TotalItems: items.TotalCount,
			DurationMs: time.Since(start).Milliseconds(),
		})
		return c.JSON(items)
	})

	(*app).Get("/pagination/files", func(c *fiber.Ctx) error {
		start := time.Now()
		query := dtos.ListQuery{
			Page:         c.QueryInt("page", 1),
			ItemsPerPage: c.QueryInt("items_per_page", publicfiles.DefaultItemsPerPage),
			Search:       c.Query("search"),
			RequestID:    middlewares.GetRequestID(c),
		}
		items, errResp := publicFilesService.ListItemsPaginated(query)
		if errResp != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(errResp)
		}
		recorder.Record(audit.ListingRequest{
			Endpoint:     "pagination/files",
			Search:       items.Filters.Search,
			Page:         items.Pagination.CurrentPage,
			ItemsPerPage: items.Pagination.ItemsPerPage,
			TotalItems:   items.Pagination.TotalItems,
			DurationMs:   time.Since(start).Milliseconds(),
		})
		return c.JSON(items)
	})

	(*app).Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	(*app).Get("/ws/files", websocket.New(wsHub.HandleConnection))
}
