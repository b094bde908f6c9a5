package sqlite

import "strconv"

// MarketRecord is one persisted daily observation. Closing is nullable: some
// sources report a trading day with no price.
//
// (market_type, jalali_date) is logically unique but deliberately not a DB
// constraint; the collapse pass enforces it.
type MarketRecord struct {
	ID         uint     `gorm:"primaryKey"`
	Closing    *float64 `gorm:"column:closing"`
	JalaliDate string   `gorm:"column:jalali_date;type:text;not null;index:idx_market_type_date"`
	MarketType string   `gorm:"column:market_type;type:text;not null;index:idx_market_type_date"`
}

// TableName overrides the default table name for GORM.
func (MarketRecord) TableName() string {
	return "market_data"
}

// contentKey identifies a record by its full field content, ignoring the
// surrogate id. The merge pass uses it for whole-row matching.
func (r MarketRecord) contentKey() string {
	closing := "null"
	if r.Closing != nil {
		closing = strconv.FormatFloat(*r.Closing, 'g', -1, 64)
	}
	return r.MarketType + "|" + r.JalaliDate + "|" + closing
}
