package main

import (
	"log"

	"github.com/gin-gonic/gin"

	config "github.com/ksudea/CT-ecommerce-api/configs"
	"github.com/ksudea/CT-ecommerce-api/internal/db"
	"github.com/ksudea/CT-ecommerce-api/internal/handlers"
	"github.com/ksudea/CT-ecommerce-api/internal/notifier"
	"github.com/ksudea/CT-ecommerce-api/internal/orders"
	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	log.Println("Database connected and migrated successfully")

	st := store.New(gdb)

	var notifiers []notifier.Notifier
	if cfg.SMS.Username != "" && cfg.SMS.APIKey != "" {
		notifiers = append(notifiers, notifier.NewSMSNotifier(cfg))
	}
	if cfg.Email.SenderEmail != "" {
		notifiers = append(notifiers, notifier.NewEmailNotifier(cfg))
	}

	orderSvc := orders.NewService(st, notifiers...)

	customerHandler := handlers.NewCustomerHandler(st)
	accountHandler := handlers.NewAccountHandler(st)
	productHandler := handlers.NewProductHandler(st)
	orderHandler := handlers.NewOrderHandler(orderSvc)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	r.POST("/customers", customerHandler.Create)
	r.GET("/customers/:id", customerHandler.Get)
	r.PUT("/customers/:id", customerHandler.Update)
	r.DELETE("/customers/:id", customerHandler.Delete)

	r.POST("/customeraccounts", accountHandler.Create)
	r.GET("/customeraccounts/:id", accountHandler.Get)
	r.PUT("/customeraccounts/:id", accountHandler.Update)
	r.DELETE("/customeraccounts/:id", accountHandler.Delete)

	r.POST("/products", productHandler.Create)
	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Get)
	r.PUT("/products/:id", productHandler.Update)
	r.DELETE("/products/:id", productHandler.Delete)

	r.POST("/orders", orderHandler.Create)
	r.GET("/orders/:id", orderHandler.Get)
	r.GET("/orders/track/:id", orderHandler.Track)
	r.GET("/orders/totalprice/:id", orderHandler.TotalPrice)
	r.DELETE("/orders/:id", orderHandler.Delete)

	log.Printf("Server is starting on %s", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
