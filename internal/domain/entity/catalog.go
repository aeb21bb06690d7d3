package entity

import "github.com/sangkips/receiptbook-api/pkg/money"

// ServiceItem is a billable service offered by the business
type ServiceItem struct {
	Name  string      `json:"name"`
	Price money.Money `json:"price"`
}

// Customer is looked up by name; contact is free text and may be empty
type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
