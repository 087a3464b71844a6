package operation_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/dto"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/operation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectCustomer = regexp.QuoteMeta(`SELECT * FROM "customers" WHERE "customers"."id" = $1 ORDER BY "customers"."id" LIMIT $2`)
	customerCols   = []string{"id", "name", "email", "phone"}
)

func TestGetCustomerOK(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(selectCustomer).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols).AddRow(1, "Ada Lovelace", "ada@example.com", "0612345678"))

	resp, err := operation.GetCustomer(context.Background(), db, 1)
	require.NoError(t, err)

	assert.Equal(t, models.Customer{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", Phone: "0612345678"}, resp.Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCustomerNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(selectCustomer).
		WithArgs(999, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols))

	_, err := operation.GetCustomer(context.Background(), db, 999)

	appErr := requireAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "Customer not found", appErr.Message)
}

func TestGetCustomerDBError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(selectCustomer).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnError(errors.New("db failure"))

	_, err := operation.GetCustomer(context.Background(), db, 1)

	appErr := requireAppError(t, err, http.StatusInternalServerError)
	assert.NotContains(t, appErr.Message, "db failure")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomer(t *testing.T) {
	db, mock := setupMockDB(t)

	input := &dto.CustomerCreateInput{
		Body: dto.CustomerBody{
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Phone: "0612345678",
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "customers" ("name","email","phone")`)).
		WithArgs("Ada Lovelace", "ada@example.com", "0612345678").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp, err := operation.CreateCustomer(context.Background(), db, nil, input)
	require.NoError(t, err)

	assert.Equal(t, "New customer, Ada Lovelace, has been added successfully", resp.Body.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCustomerDBError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "customers"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := operation.CreateCustomer(context.Background(), db, nil, &dto.CustomerCreateInput{
		Body: dto.CustomerBody{Name: "Ada Lovelace"},
	})

	requireAppError(t, err, http.StatusInternalServerError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCustomerOverwritesAllFields(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectCustomer).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols).AddRow(1, "Ada Lovelace", "ada@example.com", "0612345678"))
	// email and phone were left out of the request: they are cleared, not kept
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET "name"=$1,"email"=$2,"phone"=$3`)).
		WithArgs("Ada King", "", "", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	input := dto.CustomerCreateInput{
		Body: dto.CustomerBody{Name: "Ada King"},
	}

	resp, err := operation.UpdateCustomer(context.Background(), db, nil, 1, input)
	require.NoError(t, err)

	assert.Equal(t, "Customer details for Ada King have been updated successfully", resp.Body.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCustomerNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectCustomer).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols))
	mock.ExpectRollback()

	_, err := operation.UpdateCustomer(context.Background(), db, nil, 1, dto.CustomerCreateInput{
		Body: dto.CustomerBody{Name: "Ada King"},
	})

	requireAppError(t, err, http.StatusNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomer(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectCustomer).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols).AddRow(1, "Ada Lovelace", "", ""))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "customers" WHERE "customers"."id" = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := operation.DeleteCustomer(context.Background(), db, nil, 1)
	require.NoError(t, err)

	assert.Equal(t, "Customer removed successfully", resp.Body.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomerNotFound(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectCustomer).
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerCols))
	mock.ExpectRollback()

	_, err := operation.DeleteCustomer(context.Background(), db, nil, 1)

	requireAppError(t, err, http.StatusNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
