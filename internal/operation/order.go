package operation

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/apperr"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/dto"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/rabbitmq"
	"github.com/danielgtaylor/huma/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

const orderEntity = "order"

var now = time.Now // overridden in tests

// today is the current UTC calendar date.
func today() time.Time {
	y, m, d := now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// distinct drops repeated ids, keeping first-seen order.
func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ----------------------
// Orders
// ----------------------

// Place an order for an existing customer. Every product id must resolve,
// otherwise nothing is written.
func PlaceOrder(ctx context.Context, db *gorm.DB, ch *amqp.Channel, input *dto.OrderCreateInput) (*dto.MessageOutput, error) {
	date := today()
	if input.Body.Date != "" {
		parsed, err := time.Parse(models.DateLayout, input.Body.Date)
		if err != nil {
			return nil, apperr.BadRequest("Validation failed", map[string]string{"date": "must be a date in the format " + models.DateLayout})
		}
		date = parsed
	}
	ids := distinct(input.Body.ProductIDs)

	var customer models.Customer
	var order models.Order

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, input.Body.CustomerID).Error; err != nil {
			return apperr.HandleDB(ctx, customerEntity, err)
		}

		var products []models.Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		if len(products) == 0 || len(products) != len(ids) {
			return apperr.BadRequest("One or more product IDs are invalid", nil)
		}

		order = models.Order{
			Date:       date,
			CustomerID: &customer.ID,
			Products:   products,
		}
		// Products already exist: only the order row and its join rows are written.
		return tx.Omit("Products.*").Create(&order).Error
	})
	if err != nil {
		return nil, apperr.HandleDB(ctx, orderEntity, err)
	}

	_ = rabbitmq.PublishEvent(ctx, ch, rabbitmq.OrderCreated, order.ID, dto.NewOrderView(order, order.ProductIDs()))

	return dto.Message(fmt.Sprintf("New order for %s has been created", customer.Name)), nil
}

// Get an order with the ids of its products
func GetOrder(ctx context.Context, db *gorm.DB, id uint) (*dto.OrderOutput, error) {
	var order models.Order
	if err := db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, apperr.HandleDB(ctx, orderEntity, err)
	}

	var productIDs []uint
	err := db.WithContext(ctx).
		Table("order_products").
		Where("order_id = ?", order.ID).
		Order("product_id").
		Pluck("product_id", &productIDs).
		Error
	if err != nil {
		return nil, apperr.HandleDB(ctx, orderEntity, err)
	}

	return &dto.OrderOutput{Body: dto.NewOrderView(order, productIDs)}, nil
}

// Track an order: its date and the estimated delivery date
func TrackOrder(ctx context.Context, db *gorm.DB, id uint) (*dto.TrackingOutput, error) {
	var order models.Order
	if err := db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, apperr.HandleDB(ctx, orderEntity, err)
	}

	resp := &dto.TrackingOutput{}
	resp.Body.OrderDate = order.Date.Format(models.DateLayout)
	resp.Body.DeliveryDate = order.DeliveryDate().Format(models.DateLayout)
	return resp, nil
}

// ----------------------
// Register routes with Huma
// ----------------------
func RegisterOrderRoutes(api huma.API, dbConn *gorm.DB, ch *amqp.Channel) {
	huma.Register(api, huma.Operation{
		OperationID:   "place-order",
		Summary:       "Place an order",
		Method:        http.MethodPost,
		DefaultStatus: http.StatusCreated,
		Path:          "/orders",
		Tags:          []string{"orders"},
	}, func(ctx context.Context, input *dto.OrderCreateInput) (*dto.MessageOutput, error) {
		return PlaceOrder(ctx, dbConn, ch, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Summary:     "Get an order",
		Method:      http.MethodGet,
		Path:        "/orders/{id}",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.OrderOutput, error) {
		return GetOrder(ctx, dbConn, input.ID)
	})

	huma.Register(api, huma.Operation{
		OperationID: "track-order",
		Summary:     "Track an order",
		Description: fmt.Sprintf("Delivery is estimated at %d days after the order date.", models.DeliveryDays),
		Method:      http.MethodGet,
		Path:        "/orders/{id}/tracking",
		Tags:        []string{"orders"},
	}, func(ctx context.Context, input *dto.IDInput) (*dto.TrackingOutput, error) {
		return TrackOrder(ctx, dbConn, input.ID)
	})
}
