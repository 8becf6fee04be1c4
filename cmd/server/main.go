package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ngocminh/silvershop/internal/config"
	"github.com/ngocminh/silvershop/internal/database"
	"github.com/ngocminh/silvershop/internal/handler"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/payment"
	"github.com/ngocminh/silvershop/internal/queue"
	"github.com/ngocminh/silvershop/internal/repository"
	"github.com/ngocminh/silvershop/internal/router"
	"github.com/ngocminh/silvershop/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.ApplySchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema apply failed: %v", err)
	}
	cancel()

	rdb, err := config.NewRedisClient()
	if err != nil {
		// The token blacklist lives in Redis, so the auth gate cannot run
		// without it.
		log.Fatalf("redis connection failed: %v", err)
	}
	defer rdb.Close()

	blacklist := store.NewBlacklist(rdb)
	resets := store.NewResetStore(rdb, time.Duration(cfg.ResetTTLMin)*time.Minute)

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	permissions := repository.NewPermissionRepo(db)
	rbac := repository.NewRBACRepo(db)
	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	carts := repository.NewCartRepo(db)
	orders := repository.NewOrderRepo(db)
	addresses := repository.NewAddressRepo(db)

	momo := payment.NewMomoClient(cfg.Momo)
	vnpay := payment.NewVNPayClient(cfg.VNPay)

	authH := handler.NewAuthHandler(cfg, users, roles, rbac, blacklist, resets)
	userH := handler.NewUserHandler(cfg, users)
	roleH := handler.NewRoleHandler(roles)
	permH := handler.NewPermissionHandler(permissions)
	rbacH := handler.NewRBACHandler(rbac, users, roles, permissions)
	catH := handler.NewCategoryHandler(categories)
	prodH := handler.NewProductHandler(products, categories)
	cartH := handler.NewCartHandler(carts, products)
	orderH := handler.NewOrderHandler(cfg, orders, carts, products)
	addrH := handler.NewAddressHandler(addresses)
	payH := handler.NewPaymentHandler(cfg, orders, momo, vnpay)

	go queue.StartOrderConsumer(cfg.AMQPURL)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authGate := middleware.JWTAuth(cfg.JWTSecret, blacklist, users)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, limiter, authGate)
	router.RegisterAdmin(e, userH, roleH, permH, rbacH, authGate, rbac)
	router.RegisterCatalog(e, catH, prodH, authGate, rbac)
	router.RegisterShop(e, cartH, orderH, addrH, payH, authGate, rbac)

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
