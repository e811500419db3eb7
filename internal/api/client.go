package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client parle à l'API backend (menu, auth, commandes, paiement, contact).
// Toute réponse passe par un décodage validé : un payload illisible devient
// une DecodeError, jamais une valeur zéro silencieuse.
type Client struct {
	baseURL      string
	imageBaseURL string
	http         *http.Client
}

func NewClient(baseURL, imageBaseURL string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		http:         &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope est le format standard des réponses amont : { success, message, data }
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON exécute un appel amont au format envelope et décode data dans out.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	resp, raw, err := c.send(ctx, method, path, token, body)
	if err != nil {
		return err
	}

	// Un statut non-2xx est une erreur applicative même si le body
	// ne suit pas le format envelope
	var env envelope
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = json.Unmarshal(raw, &env)
		return &APIError{Status: resp.StatusCode, Message: fallback(env.Message)}
	}

	if err := json.Unmarshal(raw, &env); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: fallback(env.Message)}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &DecodeError{Endpoint: path, Err: err}
		}
	}
	return nil
}

// postPlain exécute un appel dont la réponse n'est pas enveloppée
// (ex. create-payment-intent renvoie { clientSecret } à plat).
func (c *Client) postPlain(ctx context.Context, path string, body, out any) error {
	resp, raw, err := c.send(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return &APIError{Status: resp.StatusCode, Message: fallback(env.Message)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path, token string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("sérialisation requête %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("requête %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("appel %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("lecture réponse %s: %w", path, err)
	}
	return resp, raw, nil
}

func fallback(msg string) string {
	if msg == "" {
		return "Une erreur est survenue, veuillez réessayer"
	}
	return msg
}
