package orders

import (
	"errors"
	"log"
	"time"

	"github.com/ksudea/CT-ecommerce-api/internal/models"
	"github.com/ksudea/CT-ecommerce-api/internal/notifier"
	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

// DeliveryLeadDays is the fixed offset between placement and expected
// delivery. It is never client-supplied.
const DeliveryLeadDays = 10

// Service implements the order workflow: placement, reads and derived views,
// and cancellation. Everything that writes more than one row goes through a
// single store transaction.
type Service struct {
	store     *store.Store
	notifiers []notifier.Notifier
}

func NewService(st *store.Store, notifiers ...notifier.Notifier) *Service {
	return &Service{store: st, notifiers: notifiers}
}

// PlaceInput is the validated order-placement request. ProductIDs may be
// empty and may contain duplicates; every occurrence must resolve.
type PlaceInput struct {
	CustomerID uint
	Date       time.Time
	ProductIDs []uint
}

// Place creates the order and its product associations atomically. A product
// id that does not resolve aborts the whole placement; nothing is left
// persisted. On success, confirmation notifications go out asynchronously.
func (s *Service) Place(in PlaceInput) (*models.Order, error) {
	customer, err := s.store.GetCustomer(in.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Customer", ID: in.CustomerID}
		}
		return nil, err
	}

	order := &models.Order{
		CustomerID:       customer.ID,
		Date:             in.Date,
		ExpectedDelivery: in.Date.AddDate(0, 0, DeliveryLeadDays),
		Status:           models.StatusPreparing,
	}

	var total float64
	err = s.store.Transaction(func(tx *store.Store) error {
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		attached := make(map[uint]bool)
		for _, productID := range in.ProductIDs {
			product, err := tx.GetProduct(productID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return &NotFoundError{Entity: "Product", ID: productID}
				}
				return err
			}

			// The join table keys on (order_id, product_id), so a duplicate
			// id still resolves above but yields a single association row.
			if attached[product.ID] {
				continue
			}
			attached[product.ID] = true

			if err := tx.AttachProduct(order.ID, product.ID); err != nil {
				return err
			}
			total += product.Price
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range s.notifiers {
		go func(n notifier.Notifier) {
			if err := n.OrderPlaced(customer, order, total); err != nil {
				log.Printf("Failed to send confirmation for order %d: %v", order.ID, err)
			}
		}(n)
	}

	return order, nil
}

// Get returns the order and its associated products.
func (s *Service) Get(id uint) (*models.Order, []models.Product, error) {
	order, err := s.store.GetOrder(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, &NotFoundError{Entity: "Order", ID: id}
		}
		return nil, nil, err
	}

	products, err := s.store.ProductsOf(order.ID)
	if err != nil {
		return nil, nil, err
	}
	return order, products, nil
}

// Track returns the order for its tracking projection: placement date,
// expected delivery date and status.
func (s *Service) Track(id uint) (*models.Order, error) {
	order, err := s.store.GetOrder(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Entity: "Order", ID: id}
		}
		return nil, err
	}
	return order, nil
}

// TotalPrice sums the prices of the order's associated products. An order
// with no products totals 0.
func (s *Service) TotalPrice(id uint) (float64, error) {
	order, err := s.store.GetOrder(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, &NotFoundError{Entity: "Order", ID: id}
		}
		return 0, err
	}

	products, err := s.store.ProductsOf(order.ID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, product := range products {
		total += product.Price
	}
	return total, nil
}

// Cancel deletes the order and its association rows in one transaction.
// Products themselves are never deleted.
func (s *Service) Cancel(id uint) error {
	order, err := s.store.GetOrder(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Entity: "Order", ID: id}
		}
		return err
	}

	return s.store.Transaction(func(tx *store.Store) error {
		if err := tx.DetachAll(order.ID); err != nil {
			return err
		}
		return tx.DeleteOrder(order)
	})
}
