package models

// CheckoutForm : champs livraison/contact saisis au moment du paiement.
// Seuls firstName, address et city sont obligatoires à la soumission.
type CheckoutForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}
