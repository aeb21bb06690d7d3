package request

// BusinessProfileRequest replaces the business profile printed on receipts
type BusinessProfileRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UserProfileRequest replaces the caller's own profile
type UserProfileRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"omitempty,email"`
}

// AssignRoleRequest sets the role of a user
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
