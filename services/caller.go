package services

import "oh-crepe-api/models"

// Caller is the authenticated identity a request acts as, taken from its token.
type Caller struct {
	ID    uint
	Email string
	Name  string
	Role  models.UserRole
}

func (c Caller) IsCustomer() bool { return c.Role == models.RoleCustomer }
