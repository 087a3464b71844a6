package operation_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/dto"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectOrder   = regexp.QuoteMeta(`SELECT * FROM "orders" WHERE "orders"."id" = $1 ORDER BY "orders"."id" LIMIT $2`)
	selectInIDs   = regexp.QuoteMeta(`SELECT * FROM "products" WHERE id IN (`)
	insertOrder   = regexp.QuoteMeta(`INSERT INTO "orders" ("date","customer_id")`)
	insertJoin    = regexp.QuoteMeta(`INSERT INTO "order_products" ("order_id","product_id")`)
	selectJoinIDs = regexp.QuoteMeta(`SELECT "product_id" FROM "order_products" WHERE order_id = $1`)
	orderCols     = []string{"id", "date", "customer_id"}
)

func expectCustomer(mock sqlmock.Sqlmock, id uint) {
	mock.ExpectQuery(selectCustomer).
		WithArgs(id, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols).AddRow(id, "Ada Lovelace", "", ""))
}

func TestPlaceOrder(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	expectCustomer(mock, 1)
	mock.ExpectQuery(selectInIDs).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "Espresso", 2.5).
			AddRow(2, "Latte", 3.9))
	mock.ExpectQuery(insertOrder).
		WithArgs(dateOf("2024-01-01"), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(insertJoin).
		WithArgs(10, 1, 10, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	resp, err := operation.PlaceOrder(context.Background(), db, nil, &dto.OrderCreateInput{
		Body: dto.OrderBody{CustomerID: 1, ProductIDs: []uint{1, 2}, Date: "2024-01-01"},
	})
	require.NoError(t, err)

	assert.Equal(t, "New order for Ada Lovelace has been created", resp.Body.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderRepeatedProductIsStoredOnce(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	expectCustomer(mock, 1)
	mock.ExpectQuery(selectInIDs).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "Espresso", 2.5).
			AddRow(2, "Latte", 3.9))
	mock.ExpectQuery(insertOrder).
		WithArgs(dateOf("2024-03-15"), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(insertJoin).
		WithArgs(11, 1, 11, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	_, err := operation.PlaceOrder(context.Background(), db, nil, &dto.OrderCreateInput{
		Body: dto.OrderBody{CustomerID: 1, ProductIDs: []uint{2, 1, 2}, Date: "2024-03-15"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderInvalidProductWritesNothing(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	expectCustomer(mock, 1)
	mock.ExpectQuery(selectInIDs).
		WithArgs(1, 2, 999).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(1, "Espresso", 2.5).
			AddRow(2, "Latte", 3.9))
	mock.ExpectRollback()

	_, err := operation.PlaceOrder(context.Background(), db, nil, &dto.OrderCreateInput{
		Body: dto.OrderBody{CustomerID: 1, ProductIDs: []uint{1, 2, 999}, Date: "2024-01-01"},
	})

	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, "One or more product IDs are invalid", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectCustomer).
		WithArgs(77, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols))
	mock.ExpectRollback()

	_, err := operation.PlaceOrder(context.Background(), db, nil, &dto.OrderCreateInput{
		Body: dto.OrderBody{CustomerID: 77, ProductIDs: []uint{1}},
	})

	appErr := requireAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "Customer not found", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderBadDate(t *testing.T) {
	db, mock := setupMockDB(t)

	_, err := operation.PlaceOrder(context.Background(), db, nil, &dto.OrderCreateInput{
		Body: dto.OrderBody{CustomerID: 1, ProductIDs: []uint{1}, Date: "2024-02-30"},
	})

	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Errors, "date")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(selectOrder).
		WithArgs(10, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(10, mustDate(t, "2024-01-01"), 1))
	mock.ExpectQuery(selectJoinIDs).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(1).AddRow(2))

	resp, err := operation.GetOrder(context.Background(), db, 10)
	require.NoError(t, err)

	assert.Equal(t, uint(10), resp.Body.ID)
	assert.Equal(t, uintPtr(1), resp.Body.CustomerID)
	assert.Equal(t, []uint{1, 2}, resp.Body.ProductIDs)
	assert.Equal(t, "2024-01-01", resp.Body.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(selectOrder).
		WithArgs(10, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(orderCols))

	_, err := operation.GetOrder(context.Background(), db, 10)

	appErr := requireAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "Order not found", appErr.Message)
}

func TestTrackOrder(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		delivery string
	}{
		{name: "same month", date: "2024-01-01", delivery: "2024-01-08"},
		{name: "leap february", date: "2024-02-25", delivery: "2024-03-03"},
		{name: "year end", date: "2024-12-28", delivery: "2025-01-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)

			mock.ExpectQuery(selectOrder).
				WithArgs(3, sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows(orderCols).AddRow(3, mustDate(t, tt.date), 1))

			resp, err := operation.TrackOrder(context.Background(), db, 3)
			require.NoError(t, err)

			assert.Equal(t, tt.date, resp.Body.OrderDate)
			assert.Equal(t, tt.delivery, resp.Body.DeliveryDate)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTrackOrderNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(selectOrder).
		WithArgs(3, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(orderCols))

	_, err := operation.TrackOrder(context.Background(), db, 3)

	requireAppError(t, err, http.StatusNotFound)
}
