package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ledgerspace/internal/cache"
	"ledgerspace/internal/handlers"
	"ledgerspace/internal/logger"
	"ledgerspace/internal/middleware"
	"ledgerspace/internal/models"
	"ledgerspace/internal/services"
	"ledgerspace/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Cache  *cache.TransactionCache
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.PaymentMethod{},
		&models.Transaction{},
		&models.TransactionLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	txCache, err := cache.NewTransactionCache(0)
	if err != nil {
		t.Fatalf("failed to create transaction cache: %v", err)
	}
	t.Cleanup(txCache.Close)

	// Services
	userService := services.NewUserService(db)
	workspaceService := services.NewWorkspaceService(db)
	auditService := services.NewAuditService(db, workspaceService)
	transactionService := services.NewTransactionService(db, workspaceService, auditService, txCache)
	paymentMethodService := services.NewPaymentMethodService(db, workspaceService)
	statsService := services.NewStatsService(transactionService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(paymentMethodService)
	statsHandler := handlers.NewStatsHandler(statsService)
	logHandler := handlers.NewLogHandler(auditService)
	categoryHandler := handlers.NewCategoryHandler()

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	workspaces := protected.Group("/workspaces")
	workspaces.POST("", workspaceHandler.Create)
	workspaces.GET("", workspaceHandler.List)
	workspaces.POST("/join", workspaceHandler.Join)
	workspaces.GET("/active", workspaceHandler.GetActive)
	workspaces.POST("/:id/switch", workspaceHandler.SwitchActive)
	workspaces.GET("/:id/members", workspaceHandler.GetMembers)
	workspaces.GET("/:id/transactions", transactionHandler.ListByWorkspace)
	workspaces.POST("/:id/payment-methods", paymentMethodHandler.Create)
	workspaces.GET("/:id/payment-methods", paymentMethodHandler.List)
	workspaces.GET("/:id/stats/summary", statsHandler.Summary)
	workspaces.GET("/:id/stats/categories", statsHandler.Categories)
	workspaces.GET("/:id/stats/monthly", statsHandler.Monthly)
	workspaces.GET("/:id/logs", logHandler.List)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.DELETE("/:id", transactionHandler.Delete)

	protected.GET("/categories/defaults", categoryHandler.Defaults)

	return &testApp{DB: db, Cache: txCache, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createWorkspace creates a workspace and returns its ID and invite code.
func (app *testApp) createWorkspace(t *testing.T, token, name string) (id float64, code string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/workspaces", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create workspace failed: %d %s", rec.Code, rec.Body.String())
	}
	ws := parseJSON(t, rec)["workspace"].(map[string]interface{})
	return ws["id"].(float64), ws["code"].(string)
}
