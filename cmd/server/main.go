package main

import (
	"log"
	"net/http"
	"os"

	"savora_storefront/internal/api"
	"savora_storefront/internal/cache"
	"savora_storefront/internal/checkout"
	"savora_storefront/internal/config"
	"savora_storefront/internal/payment"
	"savora_storefront/internal/routes"
	"savora_storefront/internal/session"
	"savora_storefront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

func main() {
	config.Load()

	// L'API amont échange les montants en nombres JSON, pas en chaînes
	decimal.MarshalJSONWithoutQuotes = true

	confirmer, err := payment.NewStripeConfirmer(os.Getenv("STRIPE_SECRET_KEY"))
	if err != nil {
		log.Fatal("❌ Impossible d'initialiser Stripe : clé manquante")
	}
	log.Println("✅ Stripe initialisé")

	rdb, err := cache.NewRedis()
	if err != nil {
		log.Fatal("❌ Redis indisponible: ", err)
	}
	log.Println("✅ Redis connecté avec succès")

	upstream := os.Getenv("UPSTREAM_API_URL")
	if upstream == "" {
		upstream = "http://localhost:5000"
	}
	client := api.NewClient(upstream, os.Getenv("IMAGE_BASE_URL"))

	cookies := newCookieStore()

	catalog := store.NewCatalog()
	carts := store.NewCartRegistry()
	sessionMgr := session.NewManager(cache.NewRedisKV(rdb))
	sequencer := checkout.NewSequencer(client, confirmer)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Client:    client,
		Catalog:   catalog,
		Carts:     carts,
		Sessions:  sessionMgr,
		Sequencer: sequencer,
		Cookies:   cookies,
		Redis:     rdb,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Storefront Savora lancé sur le port", port)
	r.Run(":" + port)
}

func newCookieStore() *sessions.CookieStore {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
