package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/prateleira-api/internal/domain"
	"github.com/jhoicas/prateleira-api/internal/domain/entity"
	"github.com/jhoicas/prateleira-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
		p.id, p.name, p.description, p.barcode, p.expires_at, p.price, p.quantity, p.min_quantity, p.shelf_id,
		ARRAY(SELECT pc.category_id FROM product_categories pc WHERE pc.product_id = p.id ORDER BY pc.category_id),
		p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y sus categorías en una sola transacción.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, name, description, barcode, expires_at, price, quantity, min_quantity, shelf_id, created_at, updated_at)
			VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`,
			product.ID, product.Name, product.Description, product.Barcode, product.ExpiresAt,
			product.Price, product.Quantity, product.MinQuantity, product.ShelfID,
			product.CreatedAt, product.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return replaceCategories(ctx, tx, product.ID, product.CategoryIDs)
	})
	if err != nil {
		if pgCode(err) == codeCheckViolation {
			return domain.ErrInvalidInput
		}
		return mapError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos del producto y reemplaza sus categorías. No modifica quantity.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE products SET name = $2, description = $3, barcode = NULLIF($4, ''), expires_at = $5, price = $6,
				min_quantity = $7, shelf_id = $8, updated_at = $9
			WHERE id = $1`,
			product.ID, product.Name, product.Description, product.Barcode, product.ExpiresAt,
			product.Price, product.MinQuantity, product.ShelfID, product.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return replaceCategories(ctx, tx, product.ID, product.CategoryIDs)
	})
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err != nil {
		return mapError("update product", err)
	}
	return nil
}

// UpdateQuantity fija el stock; el CHECK (quantity >= 0) se traduce a ErrInsufficientStock.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return mapError("update product quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, "list products",
		`SELECT `+productColumns+` FROM products p ORDER BY p.created_at DESC, p.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

// Delete elimina el producto; movimientos, alertas y categorías caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return mapError("delete product", err)
	}
	return nil
}

// ListExpiringBetween devuelve productos con expires_at en (from, to].
func (r *ProductRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	return r.list(ctx, "list expiring products",
		`SELECT `+productColumns+` FROM products p
		WHERE p.expires_at > $1 AND p.expires_at <= $2
		ORDER BY p.created_at DESC, p.id DESC`,
		from, to)
}

// ListAtOrBelowQuantity devuelve productos con quantity <= threshold.
func (r *ProductRepo) ListAtOrBelowQuantity(ctx context.Context, threshold int) ([]*entity.Product, error) {
	return r.list(ctx, "list low stock products",
		`SELECT `+productColumns+` FROM products p WHERE p.quantity <= $1 ORDER BY p.created_at DESC, p.id DESC`,
		threshold)
}

// CountByShelf cuenta los productos asignados a la estantería.
func (r *ProductRepo) CountByShelf(ctx context.Context, shelfID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE shelf_id = $1`, shelfID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by shelf: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var barcode *string
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &barcode, &p.ExpiresAt, &p.Price, &p.Quantity,
		&p.MinQuantity, &p.ShelfID, &p.CategoryIDs, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if barcode != nil {
		p.Barcode = *barcode
	}
	return &p, nil
}

func replaceCategories(ctx context.Context, tx pgx.Tx, productID string, categoryIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, productID); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO product_categories (product_id, category_id) SELECT $1, unnest($2::text[]) ON CONFLICT DO NOTHING`,
		productID, categoryIDs,
	)
	return err
}
