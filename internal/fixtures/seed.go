package fixtures

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localnerve/fleetboard/internal/models"
)

// Seed writes the fixture into the database in one transaction. Existing
// rows with the same ids are overwritten, and an asset's series and system
// links are replaced.
func Seed(ctx context.Context, db *gorm.DB, f *Fixture) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		upsert := func(value interface{}) *gorm.DB {
			return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(value)
		}

		for i, e := range f.Environments {
			env := models.Environment{EnvironmentID: e.ID, Name: e.Name, Position: i}
			if err := upsert(&env).Error; err != nil {
				return fmt.Errorf("failed to seed environment %s: %w", e.ID, err)
			}
		}

		for i, s := range f.Systems {
			sys := models.System{SystemID: s.ID, Name: s.Name, EnvironmentID: s.Environment, Position: i}
			if s.Parent != "" {
				parent := s.Parent
				sys.ParentID = &parent
			}
			if err := upsert(&sys).Error; err != nil {
				return fmt.Errorf("failed to seed system %s: %w", s.ID, err)
			}
		}

		for i, a := range f.Assets {
			if err := tx.Where("asset_id = ?", a.ID).Delete(&models.DataSeries{}).Error; err != nil {
				return fmt.Errorf("failed to clear series of asset %s: %w", a.ID, err)
			}
			if err := tx.Model(&models.Asset{AssetID: a.ID}).Association("Systems").Clear(); err != nil {
				return fmt.Errorf("failed to clear systems of asset %s: %w", a.ID, err)
			}

			asset := models.Asset{AssetID: a.ID, Label: a.Label, Position: i}
			for _, sid := range a.Systems {
				asset.Systems = append(asset.Systems, models.System{SystemID: sid})
			}
			for j, s := range a.Series {
				samples := make(models.SampleList, len(s.Values))
				for k, v := range s.Values {
					samples[k] = models.Sample{Timestamp: v.Timestamp, Value: v.Value}
				}
				asset.Series = append(asset.Series, models.DataSeries{Name: s.Name, Position: j, Samples: samples})
			}

			// systems already exist, only the join rows are written
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Omit("Systems.*").Create(&asset).Error; err != nil {
				return fmt.Errorf("failed to seed asset %s: %w", a.ID, err)
			}
		}
		return nil
	})
}
