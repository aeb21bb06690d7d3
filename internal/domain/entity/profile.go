package entity

// BusinessProfile is printed in the header of every receipt
type BusinessProfile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UserProfile belongs to a single caller identity
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
