package routes

import (
	"savora_storefront/internal/api"
	"savora_storefront/internal/checkout"
	"savora_storefront/internal/handlers"
	"savora_storefront/internal/middleware"
	"savora_storefront/internal/session"
	"savora_storefront/internal/store"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// Deps rassemble les collaborateurs injectés dans la couche vue.
type Deps struct {
	Client    *api.Client
	Catalog   *store.Catalog
	Carts     *store.CartRegistry
	Sessions  *session.Manager
	Sequencer *checkout.Sequencer
	Cookies   *gorilla.CookieStore
	Redis     *redis.Client
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.CORS())
	r.Use(middleware.Session(d.Cookies))

	apiGroup := r.Group("/api")

	apiGroup.GET("/menu", handlers.GetMenu(d.Client, d.Catalog))

	cart := apiGroup.Group("/cart")
	cart.GET("", handlers.GetCart(d.Carts))
	cart.POST("/add", handlers.AddToCart(d.Catalog, d.Carts))
	cart.POST("/decrement", handlers.DecrementCartItem(d.Carts))
	cart.DELETE("/:productId", handlers.RemoveFromCart(d.Carts))
	cart.DELETE("", handlers.ClearCart(d.Carts))
	cart.GET("/ws", handlers.CartWebSocket(d.Carts))

	auth := apiGroup.Group("/auth")
	auth.POST("/login", middleware.LoginRateLimit(d.Redis), handlers.Login(d.Client, d.Sessions))
	auth.POST("/logout", handlers.Logout(d.Sessions))
	auth.GET("/me", handlers.Me(d.Sessions))

	apiGroup.GET("/orders", middleware.RequireAuth(d.Sessions), handlers.GetMyOrders(d.Client, d.Sessions))

	// La validation de session du checkout appartient au séquenceur,
	// pas au middleware : la route reste ouverte
	apiGroup.POST("/checkout", handlers.Checkout(d.Sequencer, d.Carts, d.Sessions))

	apiGroup.POST("/contact", handlers.SendContactMessage(d.Client))
}
