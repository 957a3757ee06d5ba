package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ksudea/CT-ecommerce-api/internal/handlers"
	"github.com/ksudea/CT-ecommerce-api/internal/models"
	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

func setupProductTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	if err := testDB.AutoMigrate(&models.Product{}); err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	productHandler := handlers.NewProductHandler(store.New(testDB))

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/products", productHandler.Create)
	r.GET("/products", productHandler.List)
	r.GET("/products/:id", productHandler.Get)
	r.PUT("/products/:id", productHandler.Update)
	r.DELETE("/products/:id", productHandler.Delete)

	return r, testDB
}

func createProductRequest(method, path string, body interface{}) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func floatPtr(f float64) *float64 { return &f }

func TestCreateProductHandler(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	t.Run("Successfully creates a product", func(t *testing.T) {
		reqBody := handlers.ProductRequest{Name: "Widget", Price: floatPtr(9.99)}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, createProductRequest(http.MethodPost, "/products", reqBody))

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var response struct {
			Message string         `json:"message"`
			Product models.Product `json:"product"`
		}
		err := json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "New product added successfully", response.Message)
		assert.Greater(t, response.Product.ID, uint(0))
		assert.Equal(t, 9.99, response.Product.Price)

		var stored models.Product
		testDB.First(&stored, response.Product.ID)
		assert.Equal(t, "Widget", stored.Name)
		assert.Equal(t, 9.99, stored.Price)
	})

	t.Run("Allows a zero price", func(t *testing.T) {
		reqBody := handlers.ProductRequest{Name: "Freebie", Price: floatPtr(0)}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, createProductRequest(http.MethodPost, "/products", reqBody))

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("Returns 400 for a missing name", func(t *testing.T) {
		reqBody := map[string]interface{}{"price": 100.00}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, createProductRequest(http.MethodPost, "/products", reqBody))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response struct {
			Errors map[string]string `json:"errors"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Missing data for required field.", response.Errors["name"])
	})

	t.Run("Returns 400 for a negative price", func(t *testing.T) {
		reqBody := handlers.ProductRequest{Name: "Negative Price Item", Price: floatPtr(-1.0)}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, createProductRequest(http.MethodPost, "/products", reqBody))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		var response struct {
			Errors map[string]string `json:"errors"`
		}
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Must be greater than or equal to 0.", response.Errors["price"])

		var count int64
		testDB.Model(&models.Product{}).Where("name = ?", "Negative Price Item").Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestListProductsHandler(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	t.Run("Returns an empty list when there are no products", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, "[]", recorder.Body.String())
	})

	t.Run("Returns every product", func(t *testing.T) {
		testDB.Create(&models.Product{Name: "Widget", Price: 9.99})
		testDB.Create(&models.Product{Name: "Gadget", Price: 19.99})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response []models.Product
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Len(t, response, 2)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	product := models.Product{Name: "Old Name", Price: 1.00}
	testDB.Create(&product)

	t.Run("Replaces name and price", func(t *testing.T) {
		reqBody := handlers.ProductRequest{Name: "New Name", Price: floatPtr(2.50)}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, createProductRequest(http.MethodPut, fmt.Sprintf("/products/%d", product.ID), reqBody))

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var stored models.Product
		testDB.First(&stored, product.ID)
		assert.Equal(t, "New Name", stored.Name)
		assert.Equal(t, 2.50, stored.Price)
	})

	t.Run("Returns 404 for an unknown id", func(t *testing.T) {
		reqBody := handlers.ProductRequest{Name: "New Name", Price: floatPtr(2.50)}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, createProductRequest(http.MethodPut, "/products/999", reqBody))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestDeleteProductHandler(t *testing.T) {
	router, testDB := setupProductTestRouter(t)

	product := models.Product{Name: "Doomed", Price: 1.00}
	testDB.Create(&product)

	t.Run("Deletes the product", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		var response map[string]string
		json.Unmarshal(recorder.Body.Bytes(), &response)
		assert.Equal(t, "Product removed successfully", response["message"])

		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d", product.ID), nil))
		assert.Equal(t, http.StatusNotFound, getRec.Code)
	})

	t.Run("Returns 404 when deleting twice", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%d", product.ID), nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
