package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wishwell/wishwell/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrPurchaseExceedsQuantity guards the quantity ceiling; the scraper
	// reports raw readings and this is where the constraint lives.
	ErrPurchaseExceedsQuantity = errors.New("purchase would exceed requested quantity")
)

type Wishlist struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Item struct {
	ID                uuid.UUID      `json:"id"`
	WishlistID        uuid.UUID      `json:"wishlist_id"`
	Title             string         `json:"title"`
	URL               sql.NullString `json:"url"`
	ImageURL          sql.NullString `json:"image_url"`
	Price             sql.NullString `json:"price"`
	Currency          sql.NullString `json:"currency"`
	Priority          int            `json:"priority"`
	Importance        string         `json:"importance"`
	Quantity          int            `json:"quantity"`
	PurchasedQuantity int            `json:"purchased_quantity"`
	Description       sql.NullString `json:"description"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (db *DB) CreateWishlist(ctx context.Context, name, description string) (*Wishlist, error) {
	w := &Wishlist{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}

	query := `
		INSERT INTO wishlists (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	if err := db.pool.QueryRow(ctx, query, w.ID, w.Name, w.Description).Scan(&w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert wishlist: %w", err)
	}

	return w, nil
}

func (db *DB) GetWishlist(ctx context.Context, id uuid.UUID) (*Wishlist, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM wishlists WHERE id = $1`

	var w Wishlist
	err := db.pool.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}

	return &w, nil
}

func (db *DB) ListWishlists(ctx context.Context) ([]Wishlist, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM wishlists ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists: %w", err)
	}
	defer rows.Close()

	var wishlists []Wishlist
	for rows.Next() {
		var w Wishlist
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist: %w", err)
		}
		wishlists = append(wishlists, w)
	}

	return wishlists, rows.Err()
}

func (db *DB) DeleteWishlist(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertItems stores scraped wishlist items in one transaction and returns
// the number inserted.
func (db *DB) InsertItems(ctx context.Context, wishlistID uuid.UUID, items []models.WishlistItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO wishlist_items
			(id, wishlist_id, title, url, image_url, price, currency,
			 priority, importance, quantity, purchased_quantity, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	inserted := 0
	err := db.WithTx(ctx, func(tx pgx.Tx) error {
		for _, item := range items {
			_, err := tx.Exec(ctx, query,
				uuid.New(), wishlistID, item.Title,
				nullable(item.URL), nullable(item.ImageURL),
				nullable(item.Price), nullable(string(item.Currency)),
				item.Priority, string(item.Importance),
				item.Quantity, item.PurchasedQuantity,
				nullable(item.Description),
			)
			if err != nil {
				return fmt.Errorf("failed to insert item %q: %w", item.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (db *DB) ListItems(ctx context.Context, wishlistID uuid.UUID) ([]Item, error) {
	query := `
		SELECT id, wishlist_id, title, url, image_url, price, currency,
		       priority, importance, quantity, purchased_quantity, description,
		       created_at, updated_at
		FROM wishlist_items
		WHERE wishlist_id = $1
		ORDER BY priority DESC, created_at ASC`

	rows, err := db.pool.Query(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		err := rows.Scan(&it.ID, &it.WishlistID, &it.Title, &it.URL, &it.ImageURL,
			&it.Price, &it.Currency, &it.Priority, &it.Importance,
			&it.Quantity, &it.PurchasedQuantity, &it.Description,
			&it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// MarkPurchased increments an item's purchased count, enforcing the
// quantity ceiling.
func (db *DB) MarkPurchased(ctx context.Context, itemID uuid.UUID, count int) (*Item, error) {
	query := `
		UPDATE wishlist_items SET
			purchased_quantity = purchased_quantity + $2,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND purchased_quantity + $2 <= quantity
		RETURNING id, wishlist_id, title, url, image_url, price, currency,
		          priority, importance, quantity, purchased_quantity, description,
		          created_at, updated_at`

	var it Item
	err := db.pool.QueryRow(ctx, query, itemID, count).Scan(
		&it.ID, &it.WishlistID, &it.Title, &it.URL, &it.ImageURL,
		&it.Price, &it.Currency, &it.Priority, &it.Importance,
		&it.Quantity, &it.PurchasedQuantity, &it.Description,
		&it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the item does not exist or the ceiling would be exceeded.
		if _, getErr := db.getItem(ctx, itemID); getErr != nil {
			return nil, getErr
		}
		return nil, ErrPurchaseExceedsQuantity
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark purchased: %w", err)
	}

	return &it, nil
}

func (db *DB) getItem(ctx context.Context, itemID uuid.UUID) (*Item, error) {
	query := `
		SELECT id, wishlist_id, title, quantity, purchased_quantity
		FROM wishlist_items WHERE id = $1`

	var it Item
	err := db.pool.QueryRow(ctx, query, itemID).Scan(&it.ID, &it.WishlistID, &it.Title, &it.Quantity, &it.PurchasedQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &it, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
