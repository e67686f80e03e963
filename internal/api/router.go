package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/api/middleware"
	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/domain/user"
)

// NewRouter wires the HTTP surface. Catalog reads are public; cart, order,
// and Salesforce routes require a signed-in user; catalog writes and order
// fulfilment require manager roles.
func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	authed := middleware.Auth(jwtService)
	catalogWrite := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(
			string(user.RoleAdmin), string(user.RoleProductManager))(h))
	}
	fulfilment := func(h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireRole(
			string(user.RoleAdmin), string(user.RoleOrderManager))(h))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandlers.Register)
	mux.HandleFunc("POST /api/auth/login", authHandlers.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandlers.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandlers.Logout)
	mux.Handle("GET /api/auth/me", authed(http.HandlerFunc(authHandlers.Me)))

	// Catalog, public reads
	mux.HandleFunc("GET /api/products", handlers.ListProducts)
	mux.HandleFunc("GET /api/products/search", handlers.SearchProducts)
	mux.HandleFunc("GET /api/products/{id}", handlers.GetProduct)
	mux.HandleFunc("GET /api/categories/{slug}/products", handlers.ListProductsByCategory)

	// Catalog, manager writes
	mux.Handle("POST /api/products", catalogWrite(handlers.CreateProduct))
	mux.Handle("PUT /api/products/{id}", catalogWrite(handlers.UpdateProduct))
	mux.Handle("PUT /api/products/{id}/price", catalogWrite(handlers.UpdateProductPrice))
	mux.Handle("POST /api/products/{id}/stock/increase", catalogWrite(handlers.IncreaseStock))
	mux.Handle("POST /api/products/{id}/stock/decrease", catalogWrite(handlers.DecreaseStock))
	mux.Handle("POST /api/products/{id}/activate", catalogWrite(handlers.ActivateProduct))
	mux.Handle("POST /api/products/{id}/deactivate", catalogWrite(handlers.DeactivateProduct))
	mux.Handle("DELETE /api/products/{id}", catalogWrite(handlers.DeleteProduct))

	// Cart
	mux.Handle("GET /api/cart", authed(http.HandlerFunc(handlers.GetCart)))
	mux.Handle("POST /api/cart/items", authed(http.HandlerFunc(handlers.AddCartItem)))
	mux.Handle("PUT /api/cart/items/{productID}", authed(http.HandlerFunc(handlers.UpdateCartItem)))
	mux.Handle("DELETE /api/cart/items/{productID}", authed(http.HandlerFunc(handlers.RemoveCartItem)))
	mux.Handle("DELETE /api/cart", authed(http.HandlerFunc(handlers.ClearCart)))
	mux.Handle("POST /api/cart/sync", authed(http.HandlerFunc(handlers.SyncCart)))

	// Orders
	mux.Handle("POST /api/orders", authed(http.HandlerFunc(handlers.CreateOrder)))
	mux.Handle("GET /api/orders", authed(http.HandlerFunc(handlers.ListOrders)))
	mux.Handle("GET /api/orders/{id}", authed(http.HandlerFunc(handlers.GetOrder)))
	mux.Handle("POST /api/orders/{id}/cancel", authed(http.HandlerFunc(handlers.CancelOrder)))
	mux.Handle("POST /api/orders/{id}/confirm", fulfilment(handlers.ConfirmOrder))
	mux.Handle("POST /api/orders/{id}/process", fulfilment(handlers.ProcessOrder))
	mux.Handle("POST /api/orders/{id}/ship", fulfilment(handlers.ShipOrder))
	mux.Handle("POST /api/orders/{id}/deliver", fulfilment(handlers.DeliverOrder))

	return withLogging(mux, logger)
}

func withLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
