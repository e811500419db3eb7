package models

type ContactMessage struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	EmailAddress string `json:"emailAddress"`
	Address      string `json:"address"`
	DishName     string `json:"dishName"`
	Query        string `json:"query"`
}
