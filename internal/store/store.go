package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ksudea/CT-ecommerce-api/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps a gorm handle with the query surface the API needs. All join
// traversal is through explicit direction-specific methods; there is no
// relationship auto-loading.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to a single transaction. Any
// error from fn rolls back everything written inside it.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ── customers ──

func (s *Store) GetCustomer(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (s *Store) CreateCustomer(customer *models.Customer) error {
	return s.db.Create(customer).Error
}

func (s *Store) UpdateCustomer(customer *models.Customer) error {
	return s.db.Save(customer).Error
}

func (s *Store) DeleteCustomer(customer *models.Customer) error {
	return s.db.Delete(customer).Error
}

// ── customer accounts ──

func (s *Store) GetAccount(id uint) (*models.CustomerAccount, error) {
	var account models.CustomerAccount
	if err := s.db.First(&account, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (s *Store) CreateAccount(account *models.CustomerAccount) error {
	return s.db.Create(account).Error
}

func (s *Store) UpdateAccount(account *models.CustomerAccount) error {
	return s.db.Save(account).Error
}

func (s *Store) DeleteAccount(account *models.CustomerAccount) error {
	return s.db.Delete(account).Error
}

// ── products ──

func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (s *Store) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(product *models.Product) error {
	return s.db.Create(product).Error
}

func (s *Store) UpdateProduct(product *models.Product) error {
	return s.db.Save(product).Error
}

func (s *Store) DeleteProduct(product *models.Product) error {
	return s.db.Delete(product).Error
}

// ── orders ──

func (s *Store) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *Store) CreateOrder(order *models.Order) error {
	return s.db.Create(order).Error
}

func (s *Store) DeleteOrder(order *models.Order) error {
	return s.db.Delete(order).Error
}

// OrdersOf returns every order placed by the given customer.
func (s *Store) OrdersOf(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("customer_id = ?", customerID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ProductsOf returns the products associated with an order via the join table.
func (s *Store) ProductsOf(orderID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.db.
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Where("order_products.order_id = ?", orderID).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// AttachProduct inserts a join row linking the product to the order.
func (s *Store) AttachProduct(orderID, productID uint) error {
	return s.db.Create(&models.OrderProduct{OrderID: orderID, ProductID: productID}).Error
}

// DetachAll removes every join row for the order. Products are untouched.
func (s *Store) DetachAll(orderID uint) error {
	return s.db.Where("order_id = ?", orderID).Delete(&models.OrderProduct{}).Error
}
