package main

import (
	"os"
	"time"

	"go-vend-agent/internal/ai"
	"go-vend-agent/internal/database"
	"go-vend-agent/internal/handlers"
	"go-vend-agent/internal/logger"
	"go-vend-agent/internal/middleware"
	"go-vend-agent/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}

	dev := os.Getenv("GIN_MODE") != "release"
	logger.Init("vend-agent", dev)
	logger.SetLevel(os.Getenv("LOG_LEVEL"))

	db, err := database.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("in-memory catalog seeded with demo data")

	catalog := store.NewCatalog(db)
	ledger := store.NewLedger(db)
	engine := store.NewCheckoutEngine(db)

	// The oracle reads its API key per call; a missing key disables only
	// the AI routes, the rest of the dashboard still works.
	oracle := ai.NewGeminiOracle()
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, AI routes will fail until configured")
	}
	advisor := ai.NewPriceAdvisor(oracle, catalog, ledger)
	chat := ai.NewSession()

	h := handlers.New(catalog, ledger, engine, oracle, advisor, chat)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/machines", h.GetMachines)

		api.GET("/products", h.GetProducts)
		api.POST("/products", h.UpsertProduct)
		api.PUT("/products/:id", h.UpsertProduct)
		api.DELETE("/products/:id", h.DeleteProduct)

		api.POST("/checkout", h.ProcessCheckout)

		api.GET("/reports", h.GetSalesReport)
		api.GET("/reports/stock", h.GetStockReport)

		aiRoutes := api.Group("/ai")
		{
			aiRoutes.POST("/insight", h.GetInsight)
			aiRoutes.POST("/price-advisor", h.StartPriceAdvisor)
			aiRoutes.GET("/price-advisor", h.GetPriceAdvisor)
			aiRoutes.POST("/price-advisor/apply", h.ApplyPriceAdvisor)
			aiRoutes.POST("/price-advisor/dismiss", h.DismissPriceAdvisor)
			aiRoutes.POST("/chat", h.PostChat)
			aiRoutes.GET("/chat/history", h.GetChatHistory)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
