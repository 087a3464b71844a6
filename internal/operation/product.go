package operation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/apperr"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/dto"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/rabbitmq"
	"github.com/danielgtaylor/huma/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

const productEntity = "product"

// ----------------------
// Product CRUD
// ----------------------

// Get all products
func GetProducts(ctx context.Context, db *gorm.DB) (*dto.ProductsOutput, error) {
	products := []models.Product{}
	if err := db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, apperr.HandleDB(ctx, productEntity, err)
	}

	return &dto.ProductsOutput{Body: products}, nil
}

// Get a single product by ID
func GetProduct(ctx context.Context, db *gorm.DB, id uint) (*dto.ProductOutput, error) {
	var product models.Product
	if err := db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, apperr.HandleDB(ctx, productEntity, err)
	}

	return &dto.ProductOutput{Body: product}, nil
}

// Create a new product
func CreateProduct(ctx context.Context, db *gorm.DB, ch *amqp.Channel, input *dto.ProductCreateInput) (*dto.MessageOutput, error) {
	product := models.Product{
		Name:  input.Body.Name,
		Price: input.Body.Price,
	}

	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, apperr.HandleDB(ctx, productEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.ProductCreated, product.ID, product)

	return dto.Message(fmt.Sprintf("New product, %s, has been added successfully", product.Name)), nil
}

// Replace name and price of a product
func UpdateProduct(ctx context.Context, db *gorm.DB, ch *amqp.Channel, id uint, input dto.ProductCreateInput) (*dto.MessageOutput, error) {
	var product models.Product

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}

		product.Name = input.Body.Name
		product.Price = input.Body.Price

		return tx.Model(&product).
			Select("Name", "Price").
			Updates(models.Product{Name: product.Name, Price: product.Price}).
			Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, productEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.ProductUpdated, product.ID, product)

	return dto.Message(fmt.Sprintf("Product, %s, has been updated successfully", product.Name)), nil
}

// Delete a product. Its order_products rows go with it.
func DeleteProduct(ctx context.Context, db *gorm.DB, ch *amqp.Channel, id uint) (*dto.MessageOutput, error) {
	var product models.Product

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, productEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.ProductDeleted, product.ID, product)

	return dto.Message("Product removed successfully"), nil
}

// ----------------------
// Register routes with Huma
// ----------------------
func RegisterProductRoutes(api huma.API, dbConn *gorm.DB, ch *amqp.Channel) {
	huma.Register(api, huma.Operation{
		OperationID: "get-products",
		Summary:     "Get all products",
		Method:      http.MethodGet,
		Path:        "/products",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *struct{}) (*dto.ProductsOutput, error) {
		return GetProducts(ctx, dbConn)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Summary:     "Get a product",
		Method:      http.MethodGet,
		Path:        "/products/{id}",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.ProductOutput, error) {
		return GetProduct(ctx, dbConn, input.ID)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Summary:       "Create a product",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/products",
		Tags:          []string{"products"},
	}, func(ctx context.Context, input *dto.ProductCreateInput) (*dto.MessageOutput, error) {
		return CreateProduct(ctx, dbConn, ch, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-product",
		Summary:     "Replace a product",
		Method:      http.MethodPut,
		Path:        "/products/{id}",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *dto.ProductUpdateInput) (*dto.MessageOutput, error) {
		return UpdateProduct(ctx, dbConn, ch, input.ID, dto.ProductCreateInput{Body: input.Body})
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-product",
		Summary:     "Delete a product",
		Method:      http.MethodDelete,
		Path:        "/products/{id}",
		Tags:        []string{"products"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.MessageOutput, error) {
		return DeleteProduct(ctx, dbConn, ch, input.ID)
	})
}
