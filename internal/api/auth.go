package api

import (
	"context"
	"net/http"

	"savora_storefront/internal/models"
)

type loginData struct {
	Token string `json:"token"`
	models.UserProfile
}

// Login échange email/mot de passe contre un token bearer et le profil.
// Le token est opaque : aucune vérification d'expiration côté storefront.
func (c *Client) Login(ctx context.Context, email, password string) (string, models.UserProfile, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var data loginData
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", body, &data); err != nil {
		return "", models.UserProfile{}, err
	}
	if data.Token == "" {
		return "", models.UserProfile{}, &DecodeError{Endpoint: "/api/auth/login", Err: errMissingToken}
	}
	return data.Token, data.UserProfile, nil
}
