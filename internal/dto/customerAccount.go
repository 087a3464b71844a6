package dto

import (
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/validation"
	"github.com/danielgtaylor/huma/v2"
)

type CustomerAccountBody struct {
	Username   string `json:"username" minLength:"1" maxLength:"255"`
	Password   string `json:"password" minLength:"1" validate:"omitempty,bcryptsize"`
	CustomerID *uint  `json:"customer_id,omitempty" doc:"Owning customer"`
}

func (b *CustomerAccountBody) Resolve(ctx huma.Context, prefix *huma.PathBuffer) []error {
	return validation.Struct(prefix, b)
}

type CustomerAccountCreateInput struct {
	Body CustomerAccountBody
}

type CustomerAccountUpdateInput struct {
	ID   uint `path:"id"`
	Body CustomerAccountBody
}

// CustomerAccountView never exposes the stored credential: Password is a
// mask with one asterisk per character of the original password.
type CustomerAccountView struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	CustomerID *uint  `json:"customer_id"`
}

type CustomerAccountOutput struct {
	Body CustomerAccountView
}
