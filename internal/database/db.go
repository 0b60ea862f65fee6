package database

import (
	"log"

	"menuplanner-backend/internal/config"
	"menuplanner-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Miktar kolonlarına eklenen CHECK constraint'leri (AutoMigrate bunları oluşturmaz)
var quantityConstraints = []struct {
	Table      string
	Name       string
	Expression string
}{
	{"dish_ingredients", "chk_dish_ingredients_quantity", "quantity >= 0.001 AND quantity <= 1000000"},
	{"grocery_list_ingredients", "chk_grocery_list_ingredients_quantity", "quantity > 0"},
}

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.EmailChangeToken{},
		&models.SecurityEvent{},
		&models.Ingredient{},
		&models.Dish{},
		&models.DishIngredient{},
		&models.RecipeStep{},
		&models.GroceryList{},
		&models.GroceryListIngredient{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	for _, c := range quantityConstraints {
		var exists bool
		DB.Raw(`
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.table_constraints
				WHERE table_name = ?
				AND constraint_name = ?
			)
		`, c.Table, c.Name).Scan(&exists)
		if exists {
			continue
		}

		log.Printf("Adding constraint %s on %s...", c.Name, c.Table)
		if err := DB.Exec("ALTER TABLE " + c.Table + " ADD CONSTRAINT " + c.Name + " CHECK (" + c.Expression + ")").Error; err != nil {
			// Eski veride kuralı bozan satır olabilir, uygulama yine de açılsın
			log.Printf("Constraint %s could not be added: %v", c.Name, err)
		}
	}

	log.Println("Database connection established. Migration finished.")
}
