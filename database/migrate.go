package database

import (
	"kardexplus/models"

	"gorm.io/gorm"
)

// Migrate runs AutoMigrate for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.UserSession{},
		&models.LoginLog{},

		&models.Categoria{},
		&models.Item{},
		&models.ItemPresentacion{},

		&models.Bodega{},
		&models.BodegaStock{},

		&models.Movimiento{},
		&models.MovimientoDetalle{},

		&models.Requerimiento{},
		&models.RequerimientoDetalle{},
	)
}
