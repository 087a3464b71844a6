package dto

import (
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/validation"
	"github.com/danielgtaylor/huma/v2"
)

type ProductBody struct {
	Name  string  `json:"name" minLength:"1" maxLength:"255"`
	Price float64 `json:"price" validate:"gte=0"`
}

func (b *ProductBody) Resolve(ctx huma.Context, prefix *huma.PathBuffer) []error {
	return validation.Struct(prefix, b)
}

type ProductCreateInput struct {
	Body ProductBody
}

type ProductUpdateInput struct {
	ID   uint `path:"id"`
	Body ProductBody
}

type ProductOutput struct {
	Body models.Product
}

type ProductsOutput struct {
	Body []models.Product
}
