package request

// CreateServiceItemRequest registers a billable service; price is in cents
type CreateServiceItemRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Price int64  `json:"price"`
}

// CreateCustomerRequest registers a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Contact string `json:"contact" binding:"max=255"`
}
