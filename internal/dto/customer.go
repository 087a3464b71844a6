package dto

import (
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/validation"
	"github.com/danielgtaylor/huma/v2"
)

type CustomerBody struct {
	Name  string `json:"name" minLength:"1" doc:"Customer name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=15"`
}

func (b *CustomerBody) Resolve(ctx huma.Context, prefix *huma.PathBuffer) []error {
	return validation.Struct(prefix, b)
}

type CustomerCreateInput struct {
	Body CustomerBody
}

type CustomerUpdateInput struct {
	ID   uint `path:"id"`
	Body CustomerBody
}

type CustomerOutput struct {
	Body models.Customer
}
