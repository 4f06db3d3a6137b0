package router

import (
	"net/http"

	"bizintel/internal/handler"
	"bizintel/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups every HTTP handler served by the API.
type Handlers struct {
	Health      *handler.HealthHandler
	Products    *handler.ProductHandler
	Customers   *handler.CustomerHandler
	Employees   *handler.EmployeeHandler
	Sales       *handler.SaleHandler
	Inventory   *handler.InventoryHandler
	Dashboard   *handler.DashboardHandler
	Analytics   *handler.AnalyticsHandler
	Reports     *handler.ReportHandler
	Transfer    *handler.TransferHandler
	Maintenance *handler.MaintenanceHandler
	ML          *handler.MLHandler
}

// Options controls the middleware chain.
type Options struct {
	AuthEnabled bool
	APIKey      string
}

// crud is the handler set of an entity collection.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	GetByID(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func registerCRUD(mux *http.ServeMux, base string, h crud) {
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.GetByID)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", h.Health.Check)

	registerCRUD(mux, "/api/products", h.Products)
	registerCRUD(mux, "/api/customers", h.Customers)
	registerCRUD(mux, "/api/employees", h.Employees)
	registerCRUD(mux, "/api/sales", h.Sales)

	mux.HandleFunc("GET /api/inventory", h.Inventory.Status)
	mux.HandleFunc("GET /api/inventory/low-stock", h.Inventory.LowStock)
	mux.HandleFunc("POST /api/inventory/snapshot", h.Inventory.Snapshot)
	mux.HandleFunc("GET /api/inventory/{productId}/history", h.Inventory.History)

	mux.HandleFunc("GET /api/dashboard", h.Dashboard.Get)
	mux.HandleFunc("POST /api/dashboard/refresh", h.Dashboard.Refresh)

	mux.HandleFunc("GET /api/analytics/summary", h.Analytics.Summary)
	mux.HandleFunc("GET /api/analytics/top-products", h.Analytics.TopProducts)
	mux.HandleFunc("GET /api/analytics/segments", h.Analytics.Segments)
	mux.HandleFunc("GET /api/analytics/trend", h.Analytics.Trend)
	mux.HandleFunc("GET /api/analytics/profit-margin", h.Analytics.ProfitMargin)
	mux.HandleFunc("GET /api/analytics/recent", h.Analytics.Recent)
	mux.HandleFunc("GET /api/analytics/top-performers", h.Analytics.TopPerformers)

	mux.HandleFunc("POST /api/reports", h.Reports.Generate)
	mux.HandleFunc("GET /api/reports/render", h.Reports.Render)

	mux.HandleFunc("POST /api/import/{entity}", h.Transfer.Import)
	mux.HandleFunc("GET /api/export", h.Transfer.Export)

	mux.HandleFunc("GET /api/maintenance/stats", h.Maintenance.Stats)
	mux.HandleFunc("GET /api/maintenance/validate", h.Maintenance.Validate)
	mux.HandleFunc("DELETE /api/maintenance/data", h.Maintenance.Clear)

	mux.HandleFunc("POST /api/ml/train", h.ML.Train)
	mux.HandleFunc("POST /api/ml/predict", h.ML.Predict)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	if opts.AuthEnabled {
		handler = middleware.APIKeyAuth(opts.APIKey, logger)(handler)
	}
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
