package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/utils"
)

// setupTestDB -> SQLite in-memory khusus test controller.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

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

func seedTenant(t *testing.T, db *gorm.DB, slug string) (models.Restaurant, models.User, models.Table) {
	t.Helper()
	restaurant := models.Restaurant{
		Name:     "Restaurante " + slug,
		Slug:     slug,
		Settings: models.DefaultRestaurantSettings(),
	}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}

	user := models.User{
		RestaurantID: restaurant.ID,
		Name:         "Staff " + slug,
		Email:        "staff@" + slug + ".example.com",
		Password:     "hashed",
		Role:         "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	area := models.Area{RestaurantID: restaurant.ID, Name: "Salao"}
	if err := db.Create(&area).Error; err != nil {
		t.Fatalf("failed to seed area: %v", err)
	}
	table := models.Table{
		RestaurantID: restaurant.ID,
		AreaID:       area.ID,
		Number:       "T1",
		Seats:        4,
		Status:       models.TableStatusAvailable,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return restaurant, user, table
}

// authAs -> pengganti AuthMiddleware di test: identitas langsung di context.
func authAs(userID, restaurantID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("restaurant_id", restaurantID)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}
