package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Merge appends the records that are not already present as an exact
// field-for-field match and returns the number of rows inserted. Re-merging
// an unchanged batch inserts nothing, which makes repeated ingestion runs
// idempotent.
func (c *Client) Merge(ctx context.Context, records []MarketRecord) (int64, error) {
	var inserted int64
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := merge(tx, records)
		inserted = n
		return err
	})
	return inserted, err
}

func merge(tx *gorm.DB, records []MarketRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var existing []MarketRecord
	if err := tx.Find(&existing).Error; err != nil {
		return 0, fmt.Errorf("read existing rows: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.contentKey()] = true
	}

	var fresh []MarketRecord
	for _, r := range records {
		r.ID = 0 // surrogate ids are always assigned by the store
		if !seen[r.contentKey()] {
			fresh = append(fresh, r)
		}
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	if err := tx.CreateInBatches(&fresh, 200).Error; err != nil {
		return 0, fmt.Errorf("insert new rows: %w", err)
	}

	return int64(len(fresh)), nil
}

// CollapseDuplicates enforces the (market_type, jalali_date) uniqueness
// invariant: among rows sharing the pair, the one with the highest id is kept
// and the rest are deleted. Safe to run repeatedly.
func (c *Client) CollapseDuplicates(ctx context.Context) error {
	return collapseDuplicates(c.DB.WithContext(ctx))
}

func collapseDuplicates(tx *gorm.DB) error {
	query := `
	DELETE FROM market_data WHERE id IN (
		SELECT id FROM (
			SELECT id,
				ROW_NUMBER() OVER (
					PARTITION BY market_type, jalali_date
					ORDER BY id DESC
				) AS row_num
			FROM market_data
		)
		WHERE row_num >= 2
	);`

	if err := tx.Exec(query).Error; err != nil {
		return fmt.Errorf("collapse duplicates: %w", err)
	}
	return nil
}

// Maintain runs the merge and the duplicate collapse inside one transaction
// so an interrupted run never leaves the table between phases.
func (c *Client) Maintain(ctx context.Context, records []MarketRecord) (int64, error) {
	var inserted int64
	err := c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := merge(tx, records)
		if err != nil {
			return err
		}
		inserted = n
		return collapseDuplicates(tx)
	})
	return inserted, err
}

// ListRecords returns stored rows, optionally filtered to the given market
// types, in insertion order.
func (c *Client) ListRecords(ctx context.Context, marketTypes []string) ([]MarketRecord, error) {
	q := c.DB.WithContext(ctx).Order("id")
	if len(marketTypes) > 0 {
		q = q.Where("market_type IN ?", marketTypes)
	}

	var records []MarketRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
