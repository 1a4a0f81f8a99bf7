// Package repository provides data access for shopper sessions and carts.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/artmart/backend/internal/model"
)

// CartRepository provides data access for shopper sessions and their carts.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// CreateSession inserts a new shopper session.
func (r *CartRepository) CreateSession(ctx context.Context, id string) error {
	query := `INSERT INTO shopper_sessions (id) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to create shopper session: %w", err)
	}
	return nil
}

// SessionExists reports whether a shopper session exists.
func (r *CartRepository) SessionExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT 1 FROM shopper_sessions WHERE id = ? LIMIT 1`

	var one int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check session existence: %w", err)
	}
	return true, nil
}

// AddItem inserts a cart item, replacing any earlier framing of the same
// artwork in the same cart.
func (r *CartRepository) AddItem(ctx context.Context, sessionID string, item *model.CartItem) error {
	query := `
		INSERT OR REPLACE INTO cart_items
			(session_id, artwork_id, price, print_size, frame_style, frame_width, mat_color, mat_width)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	matColor := sql.NullString{String: item.MatColor, Valid: item.MatColor != ""}

	_, err := r.db.ExecContext(ctx, query,
		sessionID, item.ArtworkID, item.Price,
		string(item.PrintSize), item.FrameStyle, item.FrameWidth,
		matColor, item.MatWidth,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// GetItem returns one cart item, or model.ErrCartItemNotFound.
func (r *CartRepository) GetItem(ctx context.Context, sessionID string, artworkID int64) (*model.CartItem, error) {
	query := `
		SELECT artwork_id, price, print_size, frame_style, frame_width, mat_color, mat_width
		FROM cart_items
		WHERE session_id = ? AND artwork_id = ?
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, sessionID, artworkID))
	if err == sql.ErrNoRows {
		return nil, model.ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return item, nil
}

// ListItems returns all items in a cart, most recently added first.
func (r *CartRepository) ListItems(ctx context.Context, sessionID string) ([]*model.CartItem, error) {
	query := `
		SELECT artwork_id, price, print_size, frame_style, frame_width, mat_color, mat_width
		FROM cart_items
		WHERE session_id = ?
		ORDER BY created_at DESC, artwork_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []*model.CartItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}
	return items, nil
}

// DeleteItem removes one cart item. Returns model.ErrCartItemNotFound when
// the item does not exist.
func (r *CartRepository) DeleteItem(ctx context.Context, sessionID string, artworkID int64) error {
	query := `DELETE FROM cart_items WHERE session_id = ? AND artwork_id = ?`

	result, err := r.db.ExecContext(ctx, query, sessionID, artworkID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

// ClearCart removes all items from a cart.
func (r *CartRepository) ClearCart(ctx context.Context, sessionID string) error {
	query := `DELETE FROM cart_items WHERE session_id = ?`
	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.CartItem, error) {
	var item model.CartItem
	var printSize string
	var matColor sql.NullString

	err := s.Scan(
		&item.ArtworkID, &item.Price, &printSize,
		&item.FrameStyle, &item.FrameWidth, &matColor, &item.MatWidth,
	)
	if err != nil {
		return nil, err
	}

	item.CartItemID = item.ArtworkID
	item.PrintSize = model.PrintSize(printSize)
	if matColor.Valid {
		item.MatColor = matColor.String
	}
	return &item, nil
}
