package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ksudea/CT-ecommerce-api/internal/models"
	"github.com/ksudea/CT-ecommerce-api/internal/orders"
)

type OrderHandler struct {
	service *orders.Service
}

func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{service: svc}
}

// PlaceOrderRequest carries the order-placement input. Date is YYYY-MM-DD and
// defaults to the current date when omitted. ProductIDs may be empty and may
// repeat an id.
type PlaceOrderRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	Date       string `json:"date"`
	ProductIDs []uint `json:"product_ids"`
}

type orderResponse struct {
	ID                   uint               `json:"id"`
	CustomerID           uint               `json:"customer_id"`
	Date                 string             `json:"date"`
	ExpectedDeliveryDate string             `json:"expected_delivery_date"`
	Status               models.OrderStatus `json:"status"`
	Products             []models.Product   `json:"products"`
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Not a valid date, expected YYYY-MM-DD."}})
			return
		}
		date = parsed
	}

	order, err := h.service.Place(orders.PlaceInput{
		CustomerID: req.CustomerID,
		Date:       date,
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "New order placed successfully", "order_id": order.ID})
}

// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, products, err := h.service.Get(id)
	if err != nil {
		h.orderError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, orderResponse{
		ID:                   order.ID,
		CustomerID:           order.CustomerID,
		Date:                 order.Date.Format(dateLayout),
		ExpectedDeliveryDate: order.ExpectedDelivery.Format(dateLayout),
		Status:               order.Status,
		Products:             products,
	})
}

// GET /orders/track/:id
func (h *OrderHandler) Track(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.service.Track(id)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_date":             order.Date.Format(dateLayout),
		"expected_delivery_date": order.ExpectedDelivery.Format(dateLayout),
		"status":                 order.Status,
	})
}

// GET /orders/totalprice/:id
func (h *OrderHandler) TotalPrice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	total, err := h.service.TotalPrice(id)
	if err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total cost of order": total})
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(id); err != nil {
		h.orderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order removed successfully"})
}

func (h *OrderHandler) orderError(c *gin.Context, err error) {
	var nf *orders.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		return
	}
	serverError(c, err)
}
