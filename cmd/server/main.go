package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/cart"
	"menuplanner-backend/internal/config"
	"menuplanner-backend/internal/database"
	"menuplanner-backend/internal/dish"
	"menuplanner-backend/internal/export"
	"menuplanner-backend/internal/grocery"
	"menuplanner-backend/internal/ingredient"
	"menuplanner-backend/internal/mail"
	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/security"
	"menuplanner-backend/internal/storage"
	"menuplanner-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// Miktarlar JSON'da string değil sayı olarak yazılır
	decimal.MarshalJSONWithoutQuotes = true

	// Repository'ler ve servisler
	users := auth.NewGormRepository(database.DB)
	ingredients := ingredient.NewGormRepository(database.DB)
	dishes := dish.NewGormRepository(database.DB)
	lists := grocery.NewGormListRepository(database.DB)
	events := security.NewGormRepository(database.DB)

	mailer := mail.NewMailer(mail.NewSender(cfg), cfg.AppBaseURL)
	recorder := security.NewRecorder(events, mailer)
	authService := auth.NewService(users, mailer, recorder, cfg.JWTSecret)
	grocerySvc := grocery.NewService(lists, dishes, ingredients)
	userSvc := user.NewService(user.NewGormRepository(database.DB), mailer)
	carts := cart.NewSessionStore(cfg.SessionExpiration)

	var uploader storage.Uploader
	if cfg.StorageEnabled() {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Object storage could not be configured: %v", err)
		}
		if err := s3Uploader.EnsureBucket(context.Background()); err != nil {
			log.Printf("[WARN] bucket check failed: %v", err)
		}
		uploader = s3Uploader
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// CORS origins virgülle ayrılmış string olarak gelir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(authService))
	api.Get("/auth/activate", auth.ActivateHandler(authService))
	api.Post("/auth/login", auth.LoginHandler(authService))
	api.Post("/auth/refresh", auth.RefreshHandler(authService))
	api.Post("/auth/password/forgot", auth.ForgotPasswordHandler(authService))
	api.Get("/auth/password/reset", auth.CheckResetTokenHandler(authService))
	api.Post("/auth/password/reset", auth.ResetPasswordHandler(authService))
	api.Get("/users/email-confirm", user.ConfirmEmailHandler(userSvc))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(authService))
	protected.Post("/auth/logout", auth.LogoutHandler(authService))
	protected.Get("/users/me/export", export.ExportUserDataHandler(export.NewGormSource(database.DB)))

	// Kullanıcılar (sabit path'ler :id'den önce)
	adminOnly := auth.RequireRole(recorder, models.RoleAdmin)
	protected.Get("/users", adminOnly, user.ListUsersHandler(userSvc))
	protected.Put("/users/email", user.UpdateProfileHandler(userSvc))
	protected.Put("/users/enable/:id", adminOnly, user.EnableUserHandler(userSvc))
	protected.Delete("/users", user.DeleteOwnAccountHandler(userSvc))
	protected.Get("/users/:id", adminOnly, user.GetUserHandler(userSvc))
	protected.Put("/users/:id", adminOnly, user.UpdateRoleHandler(userSvc))
	protected.Delete("/users/:id", user.DeleteUserHandler(userSvc))

	// Malzemeler (sabit path'ler :id'den önce)
	protected.Get("/ingredients", ingredient.ListIngredientsHandler(ingredients))
	protected.Get("/ingredients/all", ingredient.ListAllIngredientsHandler(ingredients))
	protected.Get("/ingredients/categories", ingredient.ListCategoriesHandler())
	protected.Post("/ingredients/import", ingredient.ImportIngredientsHandler(ingredients))
	protected.Post("/ingredients", ingredient.CreateIngredientHandler(ingredients))
	protected.Get("/ingredients/:id", ingredient.GetIngredientHandler(ingredients))
	protected.Put("/ingredients/:id", ingredient.UpdateIngredientHandler(ingredients))
	protected.Delete("/ingredients/:id", ingredient.DeleteIngredientHandler(ingredients))

	// Yemekler
	protected.Get("/dishes", dish.ListDishesHandler(dishes))
	protected.Get("/dishes/filter", dish.FilterDishesHandler(dishes))
	protected.Post("/dishes", dish.CreateDishHandler(dishes, ingredients))
	protected.Get("/dishes/:id", dish.GetDishHandler(dishes))
	protected.Put("/dishes/:id", dish.UpdateDishHandler(dishes, ingredients))
	protected.Delete("/dishes/:id", dish.DeleteDishHandler(dishes))

	// Görseller
	protected.Post("/images", storage.UploadImageHandler(uploader))

	// Sepet
	protected.Get("/cart", cart.ListCartHandler(carts))
	protected.Get("/cart/dishes", cart.ListCartDishesHandler(carts, dishes))
	protected.Post("/cart/add", cart.AddToCartHandler(carts, dishes))
	protected.Put("/cart/edit/:id", cart.EditCartItemHandler(carts, dishes))
	protected.Delete("/cart/delete/:id", cart.DeleteCartItemHandler(carts))
	protected.Delete("/cart/clear", cart.ClearCartHandler(carts))

	// Alışveriş listeleri
	protected.Post("/grocerylists/save", grocery.SaveGroceryListHandler(grocerySvc, carts))
	protected.Get("/grocerylists", grocery.ListGroceryListsHandler(grocerySvc))
	protected.Get("/grocerylists/:id/ingredients", grocery.ListGroceryListIngredientsHandler(grocerySvc))
	protected.Get("/grocerylists/:id/export", grocery.ExportGroceryListHandler(grocerySvc))
	protected.Put("/grocerylists/:id", grocery.UpdateGroceryListHandler(grocerySvc))
	protected.Delete("/grocerylists/:id", grocery.DeleteGroceryListHandler(grocerySvc))

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(adminOnly)

	adminRoutes.Get("/security-events", security.ListEventsHandler(events))
	adminRoutes.Post("/security-events/:id/verify", security.VerifyEventHandler(events))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Println("Shutdown error:", err)
		}
	}()

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}

	// Arka planda kalan güvenlik olayı kayıtları tamamlansın
	recorder.Wait()
	log.Println("Server stopped")
}
