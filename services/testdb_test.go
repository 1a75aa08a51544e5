package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
)

// setupTestDB -> SQLite in-memory dengan satu koneksi, supaya transaksi
// yang balapan terserialisasi di level storage seperti di MySQL.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.Area{},
		&models.Table{},
		&models.User{},
		&models.TableSession{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Bill{},
		&models.BillSplit{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		Name:     "Cantina Teste",
		Slug:     "cantina-teste",
		Settings: models.DefaultRestaurantSettings(),
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}
	return restaurant
}

func seedTable(t *testing.T, db *gorm.DB, restaurantID uint, number, status string) models.Table {
	t.Helper()
	area := models.Area{RestaurantID: restaurantID, Name: "Area " + number}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("failed to seed area: %v", err)
	}
	table := models.Table{
		RestaurantID: restaurantID,
		AreaID:       area.ID,
		Number:       number,
		Seats:        4,
		Status:       status,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedUser(t *testing.T, db *gorm.DB, restaurantID uint) models.User {
	t.Helper()
	user := models.User{
		RestaurantID: restaurantID,
		Name:         "Garcom Teste",
		Email:        "garcom@example.com",
		Password:     "hashed",
		Role:         "staff",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// openSessionFor -> jalan pintas seeding: buka sesi lewat SessionManager
// supaya status meja ikut transisi yang sebenarnya.
func openSessionFor(t *testing.T, db *gorm.DB, tableID, userID uint) *models.TableSession {
	t.Helper()
	sm := NewSessionManager(db, NewTableRegistry(db))
	session, err := sm.OpenSession(OpenSessionInput{TableID: tableID, UserID: userID})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}
	return session
}
