package database

import "fmt"

func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&marketRow{}, &performanceRow{}, &propertyRow{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Lookups by market are the hot path of the listing endpoint
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_market
		ON properties(market_id);
	`).Error; err != nil {
		return fmt.Errorf("failed to create properties market index: %w", err)
	}

	return nil
}
