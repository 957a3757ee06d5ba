package orders_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ksudea/CT-ecommerce-api/internal/models"
	"github.com/ksudea/CT-ecommerce-api/internal/orders"
	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

func setupService(t *testing.T) (*orders.Service, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Order{}, &models.OrderProduct{})
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	return orders.NewService(store.New(testDB)), testDB
}

func seedCustomer(db *gorm.DB) models.Customer {
	customer := models.Customer{Name: "Seed Customer", Email: "seed@example.com", Phone: "0700"}
	db.Create(&customer)
	return customer
}

func seedProducts(db *gorm.DB, prices ...float64) []uint {
	ids := make([]uint, 0, len(prices))
	for i, price := range prices {
		product := models.Product{Name: fmt.Sprintf("Product %d", i+1), Price: price}
		db.Create(&product)
		ids = append(ids, product.ID)
	}
	return ids
}

func TestPlaceDerivesDeliveryAndStatus(t *testing.T) {
	svc, testDB := setupService(t)
	customer := seedCustomer(testDB)
	productIDs := seedProducts(testDB, 10.0, 20.0, 30.0)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	order, err := svc.Place(orders.PlaceInput{
		CustomerID: customer.ID,
		Date:       date,
		ProductIDs: productIDs,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.Equal(t, date.AddDate(0, 0, orders.DeliveryLeadDays), order.ExpectedDelivery)

	var count int64
	testDB.Model(&models.OrderProduct{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestPlaceRollsBackOnUnknownProduct(t *testing.T) {
	svc, testDB := setupService(t)
	customer := seedCustomer(testDB)
	productIDs := seedProducts(testDB, 10.0)

	_, err := svc.Place(orders.PlaceInput{
		CustomerID: customer.ID,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductIDs: append(productIDs, 99999),
	})

	var nf *orders.NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "Product", nf.Entity)
	assert.Equal(t, uint(99999), nf.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	var orderCount, joinCount int64
	testDB.Model(&models.Order{}).Count(&orderCount)
	testDB.Model(&models.OrderProduct{}).Count(&joinCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), joinCount)
}

func TestPlaceRejectsUnknownCustomer(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Place(orders.PlaceInput{
		CustomerID: 42,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	var nf *orders.NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "Customer", nf.Entity)
}

func TestTotalPriceIsAdditive(t *testing.T) {
	svc, testDB := setupService(t)
	customer := seedCustomer(testDB)
	productIDs := seedProducts(testDB, 9.99, 5.01, 0.0)

	order, err := svc.Place(orders.PlaceInput{
		CustomerID: customer.ID,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductIDs: productIDs,
	})
	assert.NoError(t, err)

	total, err := svc.TotalPrice(order.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 15.00, total, 0.001)

	empty, err := svc.Place(orders.PlaceInput{
		CustomerID: customer.ID,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)

	total, err = svc.TotalPrice(empty.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestCancelRemovesAssociationsOnly(t *testing.T) {
	svc, testDB := setupService(t)
	customer := seedCustomer(testDB)
	productIDs := seedProducts(testDB, 10.0, 20.0)

	order, err := svc.Place(orders.PlaceInput{
		CustomerID: customer.ID,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductIDs: productIDs,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Cancel(order.ID))

	var joinCount, productCount int64
	testDB.Model(&models.OrderProduct{}).Count(&joinCount)
	testDB.Model(&models.Product{}).Count(&productCount)
	assert.Equal(t, int64(0), joinCount)
	assert.Equal(t, int64(2), productCount)

	_, _, err = svc.Get(order.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = svc.Cancel(order.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestGetReturnsNestedProducts(t *testing.T) {
	svc, testDB := setupService(t)
	customer := seedCustomer(testDB)
	productIDs := seedProducts(testDB, 9.99)

	placed, err := svc.Place(orders.PlaceInput{
		CustomerID: customer.ID,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProductIDs: productIDs,
	})
	assert.NoError(t, err)

	order, products, err := svc.Get(placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, placed.ID, order.ID)
	assert.Len(t, products, 1)
	assert.Equal(t, 9.99, products[0].Price)

	tracked, err := svc.Track(placed.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.Date, tracked.Date)
	assert.Equal(t, order.ExpectedDelivery, tracked.ExpectedDelivery)
	assert.Equal(t, order.Status, tracked.Status)
}
