package db

import (
	"context"
	"fmt"

	"github.com/PayeTonKawa-EPSI-2025/Shop-V2/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx transactions.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// DemoProducts is the catalogue inserted by the seed command.
var DemoProducts = []models.Product{
	{Name: "Espresso beans 1kg", Price: 24.90},
	{Name: "Decaf beans 500g", Price: 13.50},
	{Name: "Ground filter coffee 250g", Price: 6.20},
	{Name: "Ceramic mug", Price: 9.00},
	{Name: "Manual grinder", Price: 39.99},
}

const insertProduct = `INSERT INTO products (name, price)
SELECT $1::text, $2::double precision
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1::text)`

// SeedProducts inserts the products whose name is not already taken and
// returns how many rows were written.
func SeedProducts(ctx context.Context, conn Execer, products []models.Product) (int64, error) {
	var inserted int64
	for _, p := range products {
		tag, err := conn.Exec(ctx, insertProduct, p.Name, p.Price)
		if err != nil {
			return inserted, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}
