// Package operation holds the request handlers of the shop API and their
// registration with huma.
//
// Handlers are plain functions taking the datastore handle (and the event
// channel for writes) so they can be exercised without an HTTP server.
package operation

import (
	"context"
	"net/http"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/dto"
	"github.com/danielgtaylor/huma/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// RegisterRoutes mounts every endpoint of the service on api.
func RegisterRoutes(api huma.API, dbConn *gorm.DB, ch *amqp.Channel) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Summary:     "Health check endpoint",
		Method:      http.MethodGet,
		Path:        "/health",
		Tags:        []string{"health"},
	}, func(ctx context.Context, input *struct{}) (*dto.HealthOutput, error) {
		resp := &dto.HealthOutput{}
		resp.Body.Status = "ok"
		return resp, nil
	})

	RegisterCustomerRoutes(api, dbConn, ch)
	RegisterCustomerAccountRoutes(api, dbConn, ch)
	RegisterProductRoutes(api, dbConn, ch)
	RegisterOrderRoutes(api, dbConn, ch)
}
