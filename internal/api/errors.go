package api

import (
	"errors"
	"fmt"
)

var (
	errMissingToken  = errors.New("token absent de la réponse")
	errMissingSecret = errors.New("clientSecret absent de la réponse")
)

// APIError : l'amont a répondu mais signale un échec (success:false ou non-2xx).
// Le message serveur est conservé tel quel pour être affiché à l'utilisateur.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// DecodeError : le payload de l'amont est illisible ou malformé.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("décodage %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
