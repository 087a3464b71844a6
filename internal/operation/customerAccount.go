package operation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/apperr"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/dto"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/rabbitmq"
	"github.com/danielgtaylor/huma/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const accountEntity = "customer account"

// MaskPassword hides a password while keeping its length visible.
func MaskPassword(length int) string {
	return strings.Repeat("*", length)
}

func accountView(account models.CustomerAccount) dto.CustomerAccountView {
	return dto.CustomerAccountView{
		ID:         account.ID,
		Username:   account.Username,
		Password:   MaskPassword(account.PasswordLength),
		CustomerID: account.CustomerID,
	}
}

// setCredentials hashes password into account and records its length in
// characters for masking.
func setCredentials(ctx context.Context, account *models.CustomerAccount, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("hash password")
		return apperr.Internal()
	}

	account.PasswordHash = string(hash)
	account.PasswordLength = utf8.RuneCountInString(password)
	return nil
}

// ensureCustomer fails with a 404 when a referenced customer does not exist.
func ensureCustomer(ctx context.Context, tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}

	var customer models.Customer
	if err := tx.First(&customer, *id).Error; err != nil {
		return apperr.HandleDB(ctx, customerEntity, err)
	}
	return nil
}

// ----------------------
// CustomerAccount CRUD
// ----------------------

// Get a customer account, password masked
func GetCustomerAccount(ctx context.Context, db *gorm.DB, id uint) (*dto.CustomerAccountOutput, error) {
	var account models.CustomerAccount
	if err := db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, apperr.HandleDB(ctx, accountEntity, err)
	}

	return &dto.CustomerAccountOutput{Body: accountView(account)}, nil
}

// Create a new customer account
func CreateCustomerAccount(ctx context.Context, db *gorm.DB, ch *amqp.Channel, input *dto.CustomerAccountCreateInput) (*dto.MessageOutput, error) {
	account := models.CustomerAccount{
		Username:   input.Body.Username,
		CustomerID: input.Body.CustomerID,
	}
	if err := setCredentials(ctx, &account, input.Body.Password); err != nil {
		return nil, err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCustomer(ctx, tx, account.CustomerID); err != nil {
			return err
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, accountEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.CustomerAccountCreated, account.ID, accountView(account))

	return dto.Message(fmt.Sprintf("New Customer Account created for %s.", account.Username)), nil
}

// Replace username, password and customer of an account
func UpdateCustomerAccount(ctx context.Context, db *gorm.DB, ch *amqp.Channel, id uint, input dto.CustomerAccountCreateInput) (*dto.MessageOutput, error) {
	var account models.CustomerAccount
	var updates models.CustomerAccount
	if err := setCredentials(ctx, &updates, input.Body.Password); err != nil {
		return nil, err
	}
	updates.Username = input.Body.Username
	updates.CustomerID = input.Body.CustomerID

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&account, id).Error; err != nil {
			return apperr.HandleDB(ctx, accountEntity, err)
		}
		if err := ensureCustomer(ctx, tx, updates.CustomerID); err != nil {
			return err
		}

		return tx.Model(&account).
			Select("Username", "PasswordHash", "PasswordLength", "CustomerID").
			Updates(updates).
			Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, accountEntity, err)
	}

	account.Username = updates.Username
	account.PasswordLength = updates.PasswordLength
	account.CustomerID = updates.CustomerID
	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.CustomerAccountUpdated, account.ID, accountView(account))

	return dto.Message(fmt.Sprintf("Customer Account for %s has been updated successfully", account.Username)), nil
}

// Delete a customer account
func DeleteCustomerAccount(ctx context.Context, db *gorm.DB, ch *amqp.Channel, id uint) (*dto.MessageOutput, error) {
	var account models.CustomerAccount

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&account, id).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, accountEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.CustomerAccountDeleted, account.ID, accountView(account))

	return dto.Message("Customer Account removed successfully"), nil
}

// ----------------------
// Register routes with Huma
// ----------------------
func RegisterCustomerAccountRoutes(api huma.API, dbConn *gorm.DB, ch *amqp.Channel) {
	huma.Register(api, huma.Operation{
		OperationID: "get-customer-account",
		Summary:     "Get a customer account",
		Description: "The password is returned masked, one asterisk per character.",
		Method:      http.MethodGet,
		Path:        "/customer_accounts/{id}",
		Tags:        []string{"customer accounts"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.CustomerAccountOutput, error) {
		return GetCustomerAccount(ctx, dbConn, input.ID)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-customer-account",
		Summary:       "Create a customer account",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/customer_accounts",
		Tags:          []string{"customer accounts"},
	}, func(ctx context.Context, input *dto.CustomerAccountCreateInput) (*dto.MessageOutput, error) {
		return CreateCustomerAccount(ctx, dbConn, ch, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-customer-account",
		Summary:     "Replace a customer account",
		Method:      http.MethodPut,
		Path:        "/customer_accounts/{id}",
		Tags:        []string{"customer accounts"},
	}, func(ctx context.Context, input *dto.CustomerAccountUpdateInput) (*dto.MessageOutput, error) {
		return UpdateCustomerAccount(ctx, dbConn, ch, input.ID, dto.CustomerAccountCreateInput{Body: input.Body})
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-customer-account",
		Summary:     "Delete a customer account",
		Method:      http.MethodDelete,
		Path:        "/customer_accounts/{id}",
		Tags:        []string{"customer accounts"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.MessageOutput, error) {
		return DeleteCustomerAccount(ctx, dbConn, ch, input.ID)
	})
}
