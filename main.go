// main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"betboard/controllers"
	"betboard/logger"
	"betboard/middleware"
	"betboard/services"
	"betboard/store"
	"betboard/websocket"
)

func main() {
	// Load environment configuration; a missing .env is fine in
	// deployed environments where variables come from the platform.
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("main: no .env file found, using process environment")
	}
	logger.SetLogLevel(os.Getenv("APP_ENV"))

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Pick the backing store: DynamoDB in deployed environments, the
	// in-memory store for local hacking (STORE=memory).
	var dataStore store.Store
	if os.Getenv("STORE") == "memory" {
		logger.Warn.Println("main: using in-memory store; data will not survive a restart")
		dataStore = store.NewMemoryStore()
	} else {
		dynamoStore, err := store.NewDynamoStore()
		if err != nil {
			log.Fatalf("Failed to initialise DynamoDB store: %v", err)
		}
		dataStore = dynamoStore
	}

	betService := services.NewBetService(dataStore)
	userService := services.NewUserService(dataStore)

	extractor, err := services.NewHTTPExtractor()
	if err != nil {
		logger.Warn.Printf("main: betslip import disabled: %v", err)
	}

	betController := controllers.NewBetController(betService, userService)
	profileController := controllers.NewProfileController(userService)

	router := gin.Default()
	router.Use(middleware.CORS())

	// Initialize session store
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret" // local testing only
	}
	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("betboard", cookieStore))

	// Public routes
	router.GET("/health", controllers.Health)
	router.POST("/login", controllers.Login)
	router.GET("/logout", controllers.Logout)
	router.GET("/bets", betController.ListBets)
	router.GET("/board", betController.Board)
	router.GET("/board/qr", controllers.BoardQRCode)
	router.GET("/board/updates", func(c *gin.Context) {
		websocket.ServeWs(c.Writer, c.Request)
	})

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.POST("/bets", betController.CreateBet)
		protected.PUT("/bets/:betId", betController.UpdateBet)
		protected.DELETE("/bets/:betId", betController.DeleteBet)
		protected.POST("/bets/clear-week", betController.ClearWeek)
		protected.GET("/bets/manage", betController.ManageBoard)
		protected.GET("/users/profile", profileController.GetProfile)
		protected.POST("/password", controllers.ChangePassword)

		if extractor != nil {
			betslipController := controllers.NewBetslipController(extractor, userService)
			protected.POST("/betslip/process", betslipController.ProcessBetslip)
		}
	}

	// Admin routes
	admin := router.Group("/", middleware.AuthRequired, middleware.AdminRequired())
	{
		admin.PUT("/users/profile", profileController.UpdateProfile)
	}

	// Start the board event broadcaster
	go websocket.HandleMessages()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info.Printf("main: starting betboard on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
