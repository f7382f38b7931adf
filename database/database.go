package database

import (
	"fmt"
	"log"

	config "github.com/ftld/certforge/configs"
	"github.com/ftld/certforge/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Program{},
		&models.Certificate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedPrograms loads the default program catalog on a fresh database so the
// issuance form has something to offer before an admin curates the registry.
func SeedPrograms() {
	var count int64
	if err := DB.Model(&models.Program{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check program registry: %v", err)
		return
	}

	if count > 0 {
		return
	}

	defaults := []models.Program{
		{Name: "Blockchain Fundamentals", Description: "Introduction to distributed ledgers, consensus and wallets.", IsActive: true},
		{Name: "DeFi Trading", Description: "Decentralized finance markets, liquidity and risk.", IsActive: true},
		{Name: "Web3 Development", Description: "Smart contracts and dApp engineering.", IsActive: true},
	}

	for _, program := range defaults {
		if err := DB.Create(&program).Error; err != nil {
			log.Fatalf("🔥 Failed to seed program %q: %v", program.Name, err)
			return
		}
	}

	log.Println("✅ Default programs seeded successfully")
}
