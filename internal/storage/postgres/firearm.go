package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/armory/internal/game/attachment"
	"github.com/cory-johannsen/armory/internal/game/inventory"
)

// ErrFirearmNotFound is returned when no firearm row matches an item type.
// It is the same value as inventory.ErrFirearmNotFound.
var ErrFirearmNotFound = inventory.ErrFirearmNotFound

// FirearmRepository stores firearm definitions and their ordered attachment
// lists.
type FirearmRepository struct {
	db *pgxpool.Pool
}

// NewFirearmRepository creates a FirearmRepository backed by db.
func NewFirearmRepository(db *pgxpool.Pool) *FirearmRepository {
	return &FirearmRepository{db: db}
}

// Save inserts or replaces def and its attachment list in one transaction.
// Attachment order is persisted so reloading preserves it.
//
// Precondition: def passes Validate.
// Postcondition: LoadFirearms returns a definition equal to def.
func (r *FirearmRepository) Save(ctx context.Context, def *inventory.FirearmDef) error {
	if def == nil {
		return errors.New("postgres: FirearmRepository.Save: nil definition")
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("postgres: FirearmRepository.Save: %q: %w", def.ID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: FirearmRepository.Save: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var firearmID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO firearms (item_type, name, base_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_type) DO UPDATE
		SET name = EXCLUDED.name, base_code = EXCLUDED.base_code, updated_at = NOW()
		RETURNING id`,
		def.ID, def.Name, int64(def.BaseCode),
	).Scan(&firearmID)
	if err != nil {
		return fmt.Errorf("postgres: FirearmRepository.Save: upserting %q: %w", def.ID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM firearm_attachments WHERE firearm_id = $1`, firearmID); err != nil {
		return fmt.Errorf("postgres: FirearmRepository.Save: clearing attachments of %q: %w", def.ID, err)
	}

	if len(def.Attachments) > 0 {
		batch := &pgx.Batch{}
		for i, a := range def.Attachments {
			batch.Queue(`
				INSERT INTO firearm_attachments (firearm_id, position, code, name, slot)
				VALUES ($1, $2, $3, $4, $5)`,
				firearmID, i, int64(a.Code), a.Name.String(), a.Slot.String(),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("postgres: FirearmRepository.Save: inserting attachments of %q: %w", def.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: FirearmRepository.Save: commit: %w", err)
	}
	return nil
}

// LoadFirearms returns every stored definition in insertion order with
// attachments in their saved order.
//
// Postcondition: every returned definition passes Validate.
func (r *FirearmRepository) LoadFirearms(ctx context.Context) ([]*inventory.FirearmDef, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.item_type, f.name, f.base_code, a.code, a.name, a.slot
		FROM firearms f
		LEFT JOIN firearm_attachments a ON a.firearm_id = f.id
		ORDER BY f.id, a.position`)
	if err != nil {
		return nil, fmt.Errorf("postgres: FirearmRepository.LoadFirearms: %w", err)
	}
	defer rows.Close()

	var (
		defs []*inventory.FirearmDef
		cur  *inventory.FirearmDef
	)
	for rows.Next() {
		var (
			itemType, name string
			baseCode       int64
			code           *int64
			attName        *string
			attSlot        *string
		)
		if err := rows.Scan(&itemType, &name, &baseCode, &code, &attName, &attSlot); err != nil {
			return nil, fmt.Errorf("postgres: FirearmRepository.LoadFirearms: scanning: %w", err)
		}
		if cur == nil || cur.ID != itemType {
			cur = &inventory.FirearmDef{ID: itemType, Name: name, BaseCode: inventory.BaseCode(baseCode)}
			defs = append(defs, cur)
		}
		if code == nil {
			continue
		}
		a, err := decodeAttachment(*code, *attName, *attSlot)
		if err != nil {
			return nil, fmt.Errorf("postgres: FirearmRepository.LoadFirearms: %q: %w", itemType, err)
		}
		cur.Attachments = append(cur.Attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: FirearmRepository.LoadFirearms: %w", err)
	}

	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("postgres: FirearmRepository.LoadFirearms: %q: %w", d.ID, err)
		}
	}
	return defs, nil
}

// LoadRegistry builds an inventory registry from every stored definition.
func (r *FirearmRepository) LoadRegistry(ctx context.Context) (*inventory.Registry, error) {
	defs, err := r.LoadFirearms(ctx)
	if err != nil {
		return nil, err
	}
	reg, err := inventory.BuildRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("postgres: FirearmRepository.LoadRegistry: %w", err)
	}
	return reg, nil
}

// Delete removes the firearm with the given item type and its attachments.
//
// Postcondition: returns ErrFirearmNotFound if no such firearm is stored.
func (r *FirearmRepository) Delete(ctx context.Context, itemType string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM firearms WHERE item_type = $1`, itemType)
	if err != nil {
		return fmt.Errorf("postgres: FirearmRepository.Delete: %q: %w", itemType, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres: FirearmRepository.Delete: %q: %w", itemType, ErrFirearmNotFound)
	}
	return nil
}

func decodeAttachment(code int64, name, slot string) (attachment.Definition, error) {
	n, ok := attachment.ParseName(name)
	if !ok {
		return attachment.Definition{}, fmt.Errorf("unknown attachment name %q", name)
	}
	s, ok := attachment.ParseSlot(slot)
	if !ok {
		return attachment.Definition{}, fmt.Errorf("unknown attachment slot %q", slot)
	}
	return attachment.Definition{Code: uint32(code), Name: n, Slot: s}, nil
}
