package migration

import (
	"Livecast-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Wallet{}); err != nil {
		log.Fatalf("Error migrating wallet database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CoinTransaction{}); err != nil {
		log.Fatalf("Error migrating coin transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CoinPackage{}); err != nil {
		log.Fatalf("Error migrating coin package database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CoinPurchase{}); err != nil {
		log.Fatalf("Error migrating coin purchase database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Gift{}); err != nil {
		log.Fatalf("Error migrating gift database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserGift{}); err != nil {
		log.Fatalf("Error migrating user gift database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
