package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"savora_storefront/internal/api"
	"savora_storefront/internal/checkout"
	"savora_storefront/internal/models"
	"savora_storefront/internal/payment"
	"savora_storefront/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Le serveur encode les montants en nombres JSON au démarrage ;
// les tests reproduisent ce réglage.
func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

// fakeUpstream simule l'API backend et enregistre tout ce qu'elle reçoit.
type fakeUpstream struct {
	mu          sync.Mutex
	requests    atomic.Int32
	calls       []string
	intentBody  map[string]any
	orderBodies []map[string]any
	failOrder   bool
	orderGate   chan struct{} // si non nil, bloque la première création de commande
	orderWaited chan struct{}
	gated       atomic.Bool
}

func (f *fakeUpstream) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/payment/create-payment-intent", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		f.mu.Lock()
		f.calls = append(f.calls, "intent")
		f.intentBody = body
		f.mu.Unlock()

		w.Write([]byte(`{"clientSecret": "pi_test_secret_123"}`))
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if f.orderGate != nil && f.gated.CompareAndSwap(false, true) {
			f.orderWaited <- struct{}{}
			<-f.orderGate
		}

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		f.mu.Lock()
		f.calls = append(f.calls, "order")
		f.orderBodies = append(f.orderBodies, body)
		fail := f.failOrder
		f.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success": false, "message": "Commande refusée par le serveur"}`))
			return
		}
		w.Write([]byte(`{"success": true, "data": {"id": "ord_1", "status": "pending"}}`))
	})

	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		mux.ServeHTTP(w, r)
	})
	return httptest.NewServer(counting)
}

// fakeConfirmer remplace Stripe dans les tests.
type fakeConfirmer struct {
	mu      sync.Mutex
	secrets []string
	fail    bool
}

func (f *fakeConfirmer) Confirm(_ context.Context, clientSecret, _ string) (string, error) {
	f.mu.Lock()
	f.secrets = append(f.secrets, clientSecret)
	f.mu.Unlock()

	if f.fail {
		return "", &payment.ProcessorError{Message: "Votre carte a été refusée"}
	}
	return "pi_test", nil
}

func filledForm() models.CheckoutForm {
	return models.CheckoutForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Phone:     "0600000000",
		Email:     "ada@example.com",
		Address:   "12 rue des Fours",
		City:      "Lyon",
		Zip:       "69001",
	}
}

func cartWith(lines map[string]int) *store.Cart {
	cart := store.NewCart()
	for price, qty := range lines {
		cart.Add(models.MenuItem{
			ID:    "item-" + price,
			Name:  "Plat " + price,
			Price: decimal.RequireFromString(price),
		}, qty)
	}
	return cart
}

func TestValidationFailsFastOnEmptyCart(t *testing.T) {
	upstream := &fakeUpstream{}
	srv := upstream.server(t)
	defer srv.Close()

	confirmer := &fakeConfirmer{}
	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), confirmer)
	cart := store.NewCart()

	_, err := seq.Run(t.Context(), checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCash,
		Token:  "tok",
		Cart:   cart,
	})

	var valErr *checkout.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, int32(0), upstream.requests.Load(), "aucun appel réseau avant validation")
	assert.Empty(t, confirmer.secrets)
	assert.Equal(t, checkout.StateIdle, seq.State(cart))
}

func TestValidationRequiresActiveSession(t *testing.T) {
	upstream := &fakeUpstream{}
	srv := upstream.server(t)
	defer srv.Close()

	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), &fakeConfirmer{})

	_, err := seq.Run(t.Context(), checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCash,
		Token:  "",
		Cart:   cartWith(map[string]int{"10.00": 1}),
	})

	var valErr *checkout.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, int32(0), upstream.requests.Load())
}

func TestValidationRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CheckoutForm)
	}{
		{"prénom manquant", func(f *models.CheckoutForm) { f.FirstName = "" }},
		{"adresse manquante", func(f *models.CheckoutForm) { f.Address = "" }},
		{"ville manquante", func(f *models.CheckoutForm) { f.City = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := &fakeUpstream{}
			srv := upstream.server(t)
			defer srv.Close()

			seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), &fakeConfirmer{})

			form := filledForm()
			tt.mutate(&form)

			_, err := seq.Run(t.Context(), checkout.Input{
				Form:   form,
				Method: models.PaymentCash,
				Token:  "tok",
				Cart:   cartWith(map[string]int{"10.00": 1}),
			})

			var valErr *checkout.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, int32(0), upstream.requests.Load())
		})
	}
}

func TestCashCheckoutCreatesOrderWithoutPayment(t *testing.T) {
	upstream := &fakeUpstream{}
	srv := upstream.server(t)
	defer srv.Close()

	confirmer := &fakeConfirmer{}
	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), confirmer)
	cart := cartWith(map[string]int{"10.00": 2, "5.50": 3})

	order, err := seq.Run(t.Context(), checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCash,
		Token:  "tok",
		Cart:   cart,
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "ord_1", order.ID)

	assert.Equal(t, []string{"order"}, upstream.calls, "cash: une seule requête, la commande")
	assert.Empty(t, confirmer.secrets)

	require.Len(t, upstream.orderBodies, 1)
	body := upstream.orderBodies[0]
	assert.Nil(t, body["paymentId"], "paiement à la livraison: paymentId null")
	assert.Equal(t, "cash", body["paymentMethod"])
	assert.Equal(t, 36.5, body["totalPrice"])
	assert.NotEmpty(t, body["idempotencyKey"])

	assert.Equal(t, 0, cart.Count(), "le panier est vidé après la commande")
	assert.Equal(t, checkout.StateComplete, seq.State(cart))
}

func TestCardCheckoutConfirmsBeforeOrdering(t *testing.T) {
	upstream := &fakeUpstream{}
	srv := upstream.server(t)
	defer srv.Close()

	confirmer := &fakeConfirmer{}
	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), confirmer)
	cart := cartWith(map[string]int{"8.49": 3}) // 25.47

	order, err := seq.Run(t.Context(), checkout.Input{
		Form:            filledForm(),
		Method:          models.PaymentCard,
		PaymentMethodID: "pm_card_visa",
		Token:           "tok",
		Cart:            cart,
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, []string{"intent", "order"}, upstream.calls)

	// Montant en centimes: round(25.47 × 100)
	assert.Equal(t, float64(2547), upstream.intentBody["amount"])
	assert.Equal(t, "usd", upstream.intentBody["currency"])

	// La confirmation consomme le client secret renvoyé par l'intent
	assert.Equal(t, []string{"pi_test_secret_123"}, confirmer.secrets)

	require.Len(t, upstream.orderBodies, 1)
	body := upstream.orderBodies[0]
	assert.Equal(t, "pi_test", body["paymentId"])
	assert.Equal(t, "card", body["paymentMethod"])

	// Même clé d'idempotence sur l'intent et la commande
	key := upstream.intentBody["idempotencyKey"]
	assert.NotEmpty(t, key)
	assert.Equal(t, key, body["idempotencyKey"])

	assert.Equal(t, 0, cart.Count())
}

func TestCardConfirmFailureStopsBeforeOrder(t *testing.T) {
	upstream := &fakeUpstream{}
	srv := upstream.server(t)
	defer srv.Close()

	confirmer := &fakeConfirmer{fail: true}
	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), confirmer)
	cart := cartWith(map[string]int{"10.00": 1})

	_, err := seq.Run(t.Context(), checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCard,
		Token:  "tok",
		Cart:   cart,
	})

	var procErr *payment.ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "Votre carte a été refusée", procErr.Message)

	assert.Equal(t, []string{"intent"}, upstream.calls, "pas de commande après refus du processeur")
	assert.Equal(t, 1, cart.Count(), "le panier survit à un échec")
	assert.Equal(t, checkout.StateIdle, seq.State(cart))
}

func TestOrderFailureKeepsCartAndSurfacesMessage(t *testing.T) {
	upstream := &fakeUpstream{failOrder: true}
	srv := upstream.server(t)
	defer srv.Close()

	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), &fakeConfirmer{})
	cart := cartWith(map[string]int{"10.00": 1})

	_, err := seq.Run(t.Context(), checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCash,
		Token:  "tok",
		Cart:   cart,
	})

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Commande refusée par le serveur", apiErr.Message)

	assert.Equal(t, 1, cart.Count())
	assert.Equal(t, checkout.StateIdle, seq.State(cart))
}

func TestSecondCheckoutRejectedWhileInFlight(t *testing.T) {
	upstream := &fakeUpstream{
		orderGate:   make(chan struct{}),
		orderWaited: make(chan struct{}),
	}
	srv := upstream.server(t)
	defer srv.Close()

	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), &fakeConfirmer{})
	cart := cartWith(map[string]int{"10.00": 1})

	input := checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCash,
		Token:  "tok",
		Cart:   cart,
	}

	done := make(chan error, 1)
	go func() {
		_, err := seq.Run(context.Background(), input)
		done <- err
	}()

	// Attendre que la première séquence soit suspendue sur l'appel commande
	select {
	case <-upstream.orderWaited:
	case <-time.After(5 * time.Second):
		t.Fatal("la première séquence n'a jamais atteint la création de commande")
	}

	_, err := seq.Run(t.Context(), input)
	assert.ErrorIs(t, err, checkout.ErrInFlight)

	close(upstream.orderGate)
	require.NoError(t, <-done)
}

func TestIndependentCartsCheckoutConcurrently(t *testing.T) {
	upstream := &fakeUpstream{
		orderGate:   make(chan struct{}),
		orderWaited: make(chan struct{}),
	}
	srv := upstream.server(t)
	defer srv.Close()

	seq := checkout.NewSequencer(api.NewClient(srv.URL, ""), &fakeConfirmer{})
	cartA := cartWith(map[string]int{"10.00": 1})
	cartB := cartWith(map[string]int{"5.50": 2})

	done := make(chan error, 1)
	go func() {
		_, err := seq.Run(context.Background(), checkout.Input{
			Form:   filledForm(),
			Method: models.PaymentCash,
			Token:  "tok-a",
			Cart:   cartA,
		})
		done <- err
	}()

	select {
	case <-upstream.orderWaited:
	case <-time.After(5 * time.Second):
		t.Fatal("la première séquence n'a jamais atteint la création de commande")
	}

	// Le panier d'une autre session passe commande pendant que le premier
	// est suspendu : aucun verrou partagé entre paniers
	order, err := seq.Run(t.Context(), checkout.Input{
		Form:   filledForm(),
		Method: models.PaymentCash,
		Token:  "tok-b",
		Cart:   cartB,
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 0, cartB.Count())
	assert.Equal(t, checkout.StateComplete, seq.State(cartB))

	close(upstream.orderGate)
	require.NoError(t, <-done)
	assert.Equal(t, 0, cartA.Count())
}
