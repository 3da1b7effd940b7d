package main

import (
	"log"

	"tavolo-be/internal/address"
	"tavolo-be/internal/api"
	"tavolo-be/internal/cart"
	"tavolo-be/internal/category"
	"tavolo-be/internal/config"
	"tavolo-be/internal/db"
	"tavolo-be/internal/inventory"
	"tavolo-be/internal/logger"
	"tavolo-be/internal/menu"
	"tavolo-be/internal/notify"
	"tavolo-be/internal/order"
	"tavolo-be/internal/param"
	"tavolo-be/internal/payment"
	"tavolo-be/internal/reservation"
	"tavolo-be/internal/stats"
	"tavolo-be/internal/table"
	"tavolo-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	tokens, err := user.NewTokenStore(cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	hub := notify.NewHub()

	paramRepo := param.NewRepository(database)
	userRepo := user.NewRepository(database)
	categoryRepo := category.NewRepository(database)
	menuRepo := menu.NewRepository(database)
	inventoryRepo := inventory.NewRepository(database)
	tableRepo := table.NewRepository(database)
	cartRepo := cart.NewRepository(database)
	orderRepo := order.NewRepository(database)
	paymentRepo := payment.NewRepository(database, inventoryRepo)
	reservationRepo := reservation.NewRepository(database, tableRepo)
	addressRepo := address.NewRepository(database)
	statsRepo := stats.NewRepository(database)

	gateway := payment.NewMockGateway(cfg.BaseURL)

	h := &api.Handler{
		Users:        user.NewService(userRepo, tokens),
		Categories:   category.NewService(categoryRepo),
		Menu:         menu.NewService(menuRepo),
		Carts:        cart.NewService(cartRepo, menuRepo, inventoryRepo),
		Orders:       order.NewService(orderRepo, cartRepo, paramRepo, hub),
		Payments:     payment.NewService(paymentRepo, orderRepo, gateway, hub),
		Reservations: reservation.NewService(reservationRepo, tableRepo, paramRepo, hub),
		Addresses:    address.NewService(addressRepo),
		Tables:       tableRepo,
		Inventory:    inventoryRepo,
		Stats:        statsRepo,
		Params:       paramRepo,
		Hub:          hub,
	}

	r := api.NewRouter(h)

	log.Printf("🚀 server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
