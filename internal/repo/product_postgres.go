package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/models"
)

const productColumns = "id, title, asin, current_amazon_price, current_amazon_price_timestamp, brand_id, visynet_max_price, original_number"

const uniqueViolationCode = "23505"

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, id, title string, originalNumber *string) (models.Product, error) {
	query := `INSERT INTO product (id, title, original_number) VALUES ($1, $2, $3) RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, title, originalNumber))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return models.Product{}, ErrProductExists
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresProductRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT ` + productColumns + ` FROM product WHERE id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY id`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Patch applies the given column assignments and rereads the row inside a
// single transaction, so a concurrent delete cannot produce a successful
// response for a row that no longer exists.
func (r *PostgresProductRepository) Patch(ctx context.Context, id string, updates []FieldUpdate) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, err
	}
	defer tx.Rollback()

	assignments := make([]string, len(updates))
	args := make([]any, 0, len(updates)+1)
	for i, u := range updates {
		assignments[i] = fmt.Sprintf("%s = $%d", u.Column, i+1)
		args = append(args, u.Value)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE product SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	p, err := scanProduct(tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) Upsert(ctx context.Context, p models.Product) error {
	query := `
		INSERT INTO product (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			asin = EXCLUDED.asin,
			current_amazon_price = EXCLUDED.current_amazon_price,
			current_amazon_price_timestamp = EXCLUDED.current_amazon_price_timestamp,
			brand_id = EXCLUDED.brand_id,
			visynet_max_price = EXCLUDED.visynet_max_price,
			original_number = EXCLUDED.original_number`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.ASIN, p.CurrentAmazonPrice, p.CurrentAmazonPriceTimestamp,
		p.BrandID, p.VisynetMaxPrice, p.OriginalNumber)
	return err
}

// Delete is idempotent: removing an id that is already gone is not an error.
func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM product WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct maps one row, in productColumns order, to a Product,
// converting nullable columns to pointers.
func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p         models.Product
		asin      sql.NullString
		price     sql.NullFloat64
		priceTime sql.NullTime
		brandID   sql.NullInt64
		maxPrice  sql.NullFloat64
		origNum   sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &asin, &price, &priceTime, &brandID, &maxPrice, &origNum); err != nil {
		return models.Product{}, err
	}
	if asin.Valid {
		p.ASIN = &asin.String
	}
	if price.Valid {
		p.CurrentAmazonPrice = &price.Float64
	}
	if priceTime.Valid {
		p.CurrentAmazonPriceTimestamp = &priceTime.Time
	}
	if brandID.Valid {
		p.BrandID = &brandID.Int64
	}
	if maxPrice.Valid {
		p.VisynetMaxPrice = &maxPrice.Float64
	}
	if origNum.Valid {
		p.OriginalNumber = &origNum.String
	}
	return p, nil
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
