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

const customerEntity = "customer"

// ----------------------
// Customer CRUD
// ----------------------

// Get a single customer by ID
func GetCustomer(ctx context.Context, db *gorm.DB, id uint) (*dto.CustomerOutput, error) {
	var customer models.Customer
	if err := db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, apperr.HandleDB(ctx, customerEntity, err)
	}

	return &dto.CustomerOutput{Body: customer}, nil
}

// Create a new customer
func CreateCustomer(ctx context.Context, db *gorm.DB, ch *amqp.Channel, input *dto.CustomerCreateInput) (*dto.MessageOutput, error) {
	customer := models.Customer{
		Name:  input.Body.Name,
		Email: input.Body.Email,
		Phone: input.Body.Phone,
	}

	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, apperr.HandleDB(ctx, customerEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.CustomerCreated, customer.ID, customer)

	return dto.Message(fmt.Sprintf("New customer, %s, has been added successfully", customer.Name)), nil
}

// Replace every writable field of a customer
func UpdateCustomer(ctx context.Context, db *gorm.DB, ch *amqp.Channel, id uint, input dto.CustomerCreateInput) (*dto.MessageOutput, error) {
	var customer models.Customer

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, id).Error; err != nil {
			return err
		}

		customer.Name = input.Body.Name
		customer.Email = input.Body.Email
		customer.Phone = input.Body.Phone

		return tx.Model(&customer).
			Select("Name", "Email", "Phone").
			Updates(models.Customer{Name: customer.Name, Email: customer.Email, Phone: customer.Phone}).
			Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, customerEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.CustomerUpdated, customer.ID, customer)

	return dto.Message(fmt.Sprintf("Customer details for %s have been updated successfully", customer.Name)), nil
}

// Delete a customer
func DeleteCustomer(ctx context.Context, db *gorm.DB, ch *amqp.Channel, id uint) (*dto.MessageOutput, error) {
	var customer models.Customer

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, id).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, customerEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.CustomerDeleted, customer.ID, customer)

	return dto.Message("Customer removed successfully"), nil
}

// ----------------------
// Register routes with Huma
// ----------------------
func RegisterCustomerRoutes(api huma.API, dbConn *gorm.DB, ch *amqp.Channel) {
	huma.Register(api, huma.Operation{
		OperationID: "get-customer",
		Summary:     "Get a customer",
		Method:      http.MethodGet,
		Path:        "/customers/{id}",
		Tags:        []string{"customers"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.CustomerOutput, error) {
		return GetCustomer(ctx, dbConn, input.ID)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-customer",
		Summary:       "Create a customer",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/customers",
		Tags:          []string{"customers"},
	}, func(ctx context.Context, input *dto.CustomerCreateInput) (*dto.MessageOutput, error) {
		return CreateCustomer(ctx, dbConn, ch, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-customer",
		Summary:     "Replace a customer",
		Method:      http.MethodPut,
		Path:        "/customers/{id}",
		Tags:        []string{"customers"},
	}, func(ctx context.Context, input *dto.CustomerUpdateInput) (*dto.MessageOutput, error) {
		return UpdateCustomer(ctx, dbConn, ch, input.ID, dto.CustomerCreateInput{Body: input.Body})
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-customer",
		Summary:     "Delete a customer",
		Method:      http.MethodDelete,
		Path:        "/customers/{id}",
		Tags:        []string{"customers"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.MessageOutput, error) {
		return DeleteCustomer(ctx, dbConn, ch, input.ID)
	})
}
