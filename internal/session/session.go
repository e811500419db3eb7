package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"savora_storefront/internal/models"
)

// KV est le stockage clé-valeur durable de la session (Redis en production).
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Durée de vie alignée sur le cookie de session (30 jours)
const sessionTTL = 30 * 24 * time.Hour

// Manager détient l'état de session : token bearer opaque, profil utilisateur
// et cache de la liste de commandes, sous des clés fixes supprimées ensemble
// au logout. Aucune vérification d'expiration du token côté storefront :
// un token périmé se manifeste par un refus de l'API amont.
type Manager struct {
	kv KV
}

func NewManager(kv KV) *Manager {
	return &Manager{kv: kv}
}

func tokenKey(sid string) string  { return fmt.Sprintf("session:%s:token", sid) }
func userKey(sid string) string   { return fmt.Sprintf("session:%s:user", sid) }
func ordersKey(sid string) string { return fmt.Sprintf("session:%s:orders", sid) }

// Login enregistre le token et le profil ; la session devient authentifiée.
func (m *Manager) Login(ctx context.Context, sid, token string, profile models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("sérialisation profil: %w", err)
	}
	if err := m.kv.Set(ctx, tokenKey(sid), token, sessionTTL); err != nil {
		return err
	}
	return m.kv.Set(ctx, userKey(sid), string(raw), sessionTTL)
}

// Logout supprime token, profil et cache de commandes d'un seul coup.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	return m.kv.Del(ctx, tokenKey(sid), userKey(sid), ordersKey(sid))
}

func (m *Manager) Token(ctx context.Context, sid string) (string, error) {
	return m.kv.Get(ctx, tokenKey(sid))
}

func (m *Manager) IsAuthenticated(ctx context.Context, sid string) bool {
	token, err := m.kv.Get(ctx, tokenKey(sid))
	return err == nil && token != ""
}

func (m *Manager) Profile(ctx context.Context, sid string) (models.UserProfile, bool, error) {
	raw, err := m.kv.Get(ctx, userKey(sid))
	if err != nil || raw == "" {
		return models.UserProfile{}, false, err
	}
	var profile models.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return models.UserProfile{}, false, fmt.Errorf("décodage profil: %w", err)
	}
	return profile, true, nil
}

// CacheOrders garde la dernière liste de commandes récupérée de l'amont.
func (m *Manager) CacheOrders(ctx context.Context, sid string, orders []models.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("sérialisation commandes: %w", err)
	}
	return m.kv.Set(ctx, ordersKey(sid), string(raw), sessionTTL)
}

func (m *Manager) CachedOrders(ctx context.Context, sid string) ([]models.Order, bool, error) {
	raw, err := m.kv.Get(ctx, ordersKey(sid))
	if err != nil || raw == "" {
		return nil, false, err
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, false, fmt.Errorf("décodage commandes: %w", err)
	}
	return orders, true, nil
}

// InvalidateOrders jette le cache, par exemple après une nouvelle commande.
func (m *Manager) InvalidateOrders(ctx context.Context, sid string) error {
	return m.kv.Del(ctx, ordersKey(sid))
}
