package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/vismay-farm/agri-market/internal/config"
	"github.com/vismay-farm/agri-market/internal/database"
	"github.com/vismay-farm/agri-market/internal/handler"
	appmw "github.com/vismay-farm/agri-market/internal/middleware"
	"github.com/vismay-farm/agri-market/internal/queue"
	"github.com/vismay-farm/agri-market/internal/repository"
	"github.com/vismay-farm/agri-market/internal/router"
)

func main() {
	// .env is a development convenience; in deployment the variables
	// come from the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// Redis is optional. Both middlewares degrade to passthrough when
	// the client is nil.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)
	machines := repository.NewMachineRepo(db)
	crops := repository.NewCropRepo(db)
	barters := repository.NewBarterRepo(db)
	purchases := repository.NewPurchaseRepo(db)

	authH := handler.NewAuthHandler(cfg, db, users, profiles, tokens)
	machineH := handler.NewMachineHandler(machines)
	cropH := handler.NewCropHandler(crops)
	catalogH := handler.NewCatalogHandler(machines, crops)
	barterH := handler.NewBarterHandler(barters, machines, profiles)
	purchaseH := handler.NewPurchaseHandler(purchases, crops, profiles)
	assistantH := handler.NewAssistantHandler()

	go func() {
		if err := queue.StartDecisionConsumer(); err != nil {
			log.Printf("decision consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cache echo.MiddlewareFunc
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled {
		cache = appmw.NewResponseCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e, catalogH, machineH, cropH, assistantH, cache)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterFarmer(e, cfg.JWTSecret, catalogH, machineH, cropH, barterH, purchaseH)

	log.Fatal(e.Start(":" + cfg.Port))
}
