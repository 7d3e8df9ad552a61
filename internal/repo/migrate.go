package repo

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/online_pharmacy/internal/models"
)

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
