package model

import "github.com/rocketstore/customers-api/internal/geocode"

// Customer is customer model entity
type Customer struct {
	ID        string  `json:"id" bson:"_id,omitempty"`
	Name      string  `json:"name" bson:"name"`
	Email     string  `json:"emailAddress" bson:"email"`
	VatNumber *string `json:"vatNumber" bson:"vatNumber"`
	City      string  `json:"city" bson:"city"`
}

// CustomerSummary is the projection returned by listing, it never
// carries VAT number or city
type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"emailAddress"`
}

// CustomerDetail is the projection returned by single customer retrieval.
// Forward is present only when geocoding succeeded for the customer city
type CustomerDetail struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"emailAddress"`
	VatNumber *string           `json:"vatNumber"`
	City      string            `json:"city"`
	Forward   *geocode.Location `json:"forward,omitempty"`
}

// Summary builds listing projection out of customer
func (c *Customer) Summary() CustomerSummary {
	return CustomerSummary{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
	}
}

// Detail builds retrieval projection out of customer
func (c *Customer) Detail() *CustomerDetail {
	return &CustomerDetail{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		VatNumber: c.VatNumber,
		City:      c.City,
	}
}
