package database

import (
	"fmt"
	"log"

	"kardexplus/models"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

var defaultPermissions = []models.Permission{
	{Name: "usuario.ver", Description: "Ver usuarios"},
	{Name: "usuario.administrar", Description: "Crear y editar usuarios"},
	{Name: "item.ver", Description: "Ver items y presentaciones"},
	{Name: "item.administrar", Description: "Crear y editar items y presentaciones"},
	{Name: "bodega.ver", Description: "Ver bodegas y stock"},
	{Name: "bodega.administrar", Description: "Crear y editar bodegas"},
	{Name: "movimiento.ver", Description: "Ver movimientos y kardex"},
	{Name: "movimiento.crear", Description: "Registrar movimientos"},
	{Name: "requerimiento.ver", Description: "Ver requerimientos"},
	{Name: "requerimiento.crear", Description: "Crear requerimientos"},
	{Name: "requerimiento.aprobar", Description: "Aprobar o cancelar requerimientos"},
	{Name: "requerimiento.despachar", Description: "Despachar requerimientos"},
}

// RunSeeders inserts base roles, permissions and the admin user, idempotently.
func RunSeeders(db *gorm.DB) {
	for _, p := range defaultPermissions {
		db.Where(models.Permission{Name: p.Name}).FirstOrCreate(&p)
	}

	var perms []models.Permission
	db.Find(&perms)

	admin := models.Role{Name: "Administrador", Description: "Acceso total"}
	db.Where(models.Role{Name: admin.Name}).FirstOrCreate(&admin)
	db.Model(&admin).Association("Permissions").Replace(perms)

	var viewPerms []models.Permission
	db.Where("name LIKE ?", "%.ver").Find(&viewPerms)
	consulta := models.Role{Name: "Consulta", Description: "Solo lectura"}
	db.Where(models.Role{Name: consulta.Name}).FirstOrCreate(&consulta)
	db.Model(&consulta).Association("Permissions").Replace(viewPerms)

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash seed password: %v", err)
		}
		user := models.User{
			Username: "admin",
			Name:     "Administrador",
			Email:    "admin@kardexplus.local",
			Password: string(hashed),
			IsActive: true,
		}
		db.Create(&user)
		db.Model(&user).Association("Roles").Replace([]models.Role{admin})
		log.Println("Seeded admin user (admin / admin123)")
	}
}

// SeedDemoData loads a small demo catalog with random stock levels. Intended
// for fresh development databases only.
func SeedDemoData(db *gorm.DB) {
	var count int64
	db.Model(&models.Bodega{}).Count(&count)
	if count > 0 {
		return
	}

	bodegas := []models.Bodega{
		{Codigo: "BOD-CENTRAL", Nombre: "Bodega Central", Ubicacion: "Planta principal"},
		{Codigo: "BOD-NORTE", Nombre: "Bodega Norte", Ubicacion: "Sucursal norte"},
	}
	for i := range bodegas {
		db.Create(&bodegas[i])
	}

	categoria := models.Categoria{Nombre: "General", Descripcion: "Categoría por defecto"}
	db.Create(&categoria)

	items := []models.Item{
		{Codigo: "ITM-0001", Nombre: "Guantes de nitrilo", CategoriaID: &categoria.ID, UnidadMedida: "UND", Costo: 0.35, PrecioSugerido: 0.60},
		{Codigo: "ITM-0002", Nombre: "Alcohol 70%", CategoriaID: &categoria.ID, UnidadMedida: "LT", Costo: 2.10, PrecioSugerido: 3.50},
		{Codigo: "ITM-0003", Nombre: "Mascarilla quirúrgica", CategoriaID: &categoria.ID, UnidadMedida: "UND", Costo: 0.12, PrecioSugerido: 0.25},
	}
	for i := range items {
		db.Create(&items[i])

		presentacion := models.ItemPresentacion{
			ItemID:       items[i].ID,
			Nombre:       "Caja de 12",
			CantidadBase: 12,
			SKU:          fmt.Sprintf("%s-C12", items[i].Codigo),
			Barcode:      fmt.Sprintf("750%07d", items[i].ID),
			IsActive:     true,
		}
		db.Create(&presentacion)

		for _, bodega := range bodegas {
			stock := models.BodegaStock{
				BodegaID: bodega.ID,
				ItemID:   items[i].ID,
				Cantidad: float64(rand.Intn(400) + 100),
			}
			db.Create(&stock)
		}
	}

	log.Println("Seeded demo catalog")
}
