package handlers

import (
	"errors"
	"net/http"

	"savora_storefront/internal/api"
	"savora_storefront/internal/checkout"
	"savora_storefront/internal/payment"
)

// userMessage convertit une erreur du cœur en message affichable.
// Les messages serveur et processeur sont rendus tels quels, le reste
// retombe sur un message générique.
func userMessage(err error) string {
	if errors.Is(err, checkout.ErrInFlight) {
		return "Une commande est déjà en cours de traitement"
	}

	var valErr *checkout.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Reason
	}

	var procErr *payment.ProcessorError
	if errors.As(err, &procErr) {
		return procErr.Message
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	var decErr *api.DecodeError
	if errors.As(err, &decErr) {
		return "Réponse du serveur illisible, veuillez réessayer"
	}

	return "Une erreur est survenue, veuillez réessayer"
}

func httpStatus(err error) int {
	var valErr *checkout.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest
	}

	var procErr *payment.ProcessorError
	if errors.As(err, &procErr) {
		return http.StatusPaymentRequired
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}

	// Transport ou décodage : l'amont est injoignable ou incohérent
	return http.StatusBadGateway
}
