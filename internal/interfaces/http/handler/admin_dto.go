package handler

import (
	catalogapp "github.com/edusite/backend/internal/application/catalog"
)

// ProductForm is the create-or-update form posted to /admin.
// Every field except id must be present; prices stay text until the service parses them.
type ProductForm struct {
	ID            string `form:"id" json:"id" example:"7"`
	Name          string `form:"name" json:"name" binding:"required,max=200" example:"Campus Hoodie"`
	Brand         string `form:"brand" json:"brand" binding:"required,max=100" example:"EduWear"`
	Price         string `form:"price" json:"price" binding:"required" example:"39.90"`
	OriginalPrice string `form:"originalPrice" json:"originalPrice" binding:"required" example:"49.90"`
	ImageURL      string `form:"imageUrl" json:"imageUrl" binding:"required" example:"https://cdn.example.com/hoodie.png"`
}

// Input converts the form into the product service input
func (f ProductForm) Input() catalogapp.SaveProductInput {
	return catalogapp.SaveProductInput{
		ID:            f.ID,
		Name:          f.Name,
		Brand:         f.Brand,
		Price:         f.Price,
		OriginalPrice: f.OriginalPrice,
		ImageURL:      f.ImageURL,
	}
}

// DeleteProductForm is the form sent to delete a product
type DeleteProductForm struct {
	ID string `form:"id" json:"id" binding:"required" example:"7"`
}

// LoginForm is the admin sign-in form
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required,max=100"`
	Password string `form:"password" json:"password" binding:"required,max=128"`
}

// SessionResponse describes a new admin session
type SessionResponse struct {
	Username  string `json:"username" example:"admin"`
	ExpiresAt string `json:"expiresAt" example:"2026-10-18T20:00:00Z"`
}
