package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"howisyourday/config"
	"howisyourday/db"
	"howisyourday/handlers"
	"howisyourday/middleware"
	"howisyourday/services"
	"howisyourday/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := db.Migrate(conn, "schema.sql"); err != nil {
		log.Fatal("Failed to apply schema: ", err)
	}
	log.Println("Database schema verified")

	h := &handlers.Handler{
		Posts:       store.NewPostStore(conn),
		Users:       store.NewUserStore(conn),
		Subscribers: store.NewSubscriberStore(conn),
		PushTokens:  store.NewPushTokenStore(conn),
		Mail:        services.NewEmailService(cfg.SendGridAPIKey, cfg.FromEmail, cfg.SiteURL),
		Push:        services.NewPushService(),
		JWTSecret:   cfg.JWTSecret,
	}

	// Image host credentials come from CLOUDINARY_URL; without them the
	// upload endpoint stays up but answers 500.
	if images, err := services.NewImageService(); err != nil {
		log.Printf("Image uploads disabled: %v", err)
	} else {
		h.Images = images
	}

	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	// Public pages
	r.GET("/", h.Home)
	r.GET("/post/:slug", h.ShowPost)
	r.GET("/tags", h.ShowTags)

	api := r.Group("/api")
	{
		api.GET("/posts", h.ListPosts)
		api.GET("/posts/:slug", h.GetPost)
		api.GET("/tags", h.ListTags)

		api.POST("/subscribe", h.Subscribe)
		api.GET("/subscribe/confirm", h.ConfirmSubscription)
		api.POST("/push/register", h.RegisterPushToken)
		api.POST("/contact", h.Contact)

		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", h.Logout)
	}

	admin := r.Group("/api", middleware.RequireAdmin(cfg.JWTSecret))
	{
		admin.POST("/auth/register", h.Register)

		admin.GET("/admin/posts", h.AdminListPosts)
		admin.POST("/admin/posts", h.CreatePost)
		admin.PUT("/admin/posts/:id", h.UpdatePost)
		admin.DELETE("/admin/posts/:id", h.DeletePost)

		admin.GET("/admin/subscribers", h.AdminListSubscribers)
		admin.POST("/admin/newsletter", h.SendNewsletter)
		admin.POST("/admin/upload", h.Upload)
		admin.POST("/admin/notify", h.Notify)
	}

	log.Println("Server starting on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
