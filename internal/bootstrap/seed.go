package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Marca{},
		&model.Modelo{},
		&model.Vehiculo{},
	)
}

// SeedAdminUser guarantees a usable admin account in development. The
// password is hashed like any other credential before it reaches the store.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Usuario{}).
		Where("rol = ?", model.RolAdmin).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Usuario{
		Nombre:    "Admin",
		Apellidos: "Sistema",
		Email:     "admin@concesionario.com",
		Password:  string(hashed),
		Rol:       model.RolAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@concesionario.com")
	log.Println("   Password: admin123")

	return nil
}
