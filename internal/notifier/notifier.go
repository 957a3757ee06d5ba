package notifier

import "github.com/ksudea/CT-ecommerce-api/internal/models"

// Notifier delivers an order confirmation to the customer. Implementations
// must be safe to call from a goroutine; failures are logged by the caller
// and never fail the order.
type Notifier interface {
	OrderPlaced(customer *models.Customer, order *models.Order, total float64) error
}
