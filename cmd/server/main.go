package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"solardevis-pro/internal/ai"
	"solardevis-pro/internal/auth"
	"solardevis-pro/internal/config"
	"solardevis-pro/internal/handlers"
	"solardevis-pro/internal/middleware"
	"solardevis-pro/internal/solar"
	"solardevis-pro/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	st, err := store.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session store")
	}

	analyst := ai.NewGeminiAnalyst(cfg.GeminiAPIKey, cfg.GeminiModel)
	solarClient := solar.NewClient(cfg.SolarAPIKey)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// Degrade the optional panels up front instead of failing at call time.
	if !analyst.Enabled() {
		log.Warn().Msg("GEMINI_API_KEY missing: AI analysis is disabled")
	}
	if !solarClient.Enabled() {
		log.Warn().Msg("GOOGLE_SOLAR_API_KEY missing: solar lookup uses regional defaults only")
	}

	h, err := handlers.New(cfg, st, analyst, solarClient, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build handlers")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)

	api := r.Group("/api")
	api.GET("/system/status", h.GetSystemStatus)

	api.Use(middleware.RequireAgent(tokens))
	{
		api.POST("/imports", h.CreateImport)
		api.GET("/imports/:id", h.GetImport)
		api.GET("/imports/:id/profiles/:idx", h.GetProfile)
		api.PUT("/imports/:id/profiles/:idx", h.UpdateProfile)
		api.GET("/imports/:id/profiles/:idx/quote", h.GetQuote)
		api.GET("/imports/:id/profiles/:idx/quote/pdf", h.GetQuotePDF)
		api.GET("/imports/:id/profiles/:idx/document", h.GetQuoteDocument)

		api.POST("/analysis", h.PostAnalysis)
		api.GET("/solar/potential", h.GetSolarPotential)
	}

	// Serve the built SPA; on refresh of a client route, hand back
	// index.html so the frontend router takes over.
	r.Static("/assets", cfg.WebDir+"/assets")
	r.NoRoute(func(c *gin.Context) {
		c.File(cfg.WebDir + "/index.html")
	})

	log.Info().Str("port", cfg.Port).Msg("🚀 SolarDevis Pro server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
