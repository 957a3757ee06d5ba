package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksudea/CT-ecommerce-api/internal/models"
	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

type ProductHandler struct {
	store *store.Store
}

func NewProductHandler(st *store.Store) *ProductHandler {
	return &ProductHandler{store: st}
}

// ProductRequest uses a pointer for Price so that a free product (0.0) still
// passes the required check.
type ProductRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product := models.Product{
		Name:  req.Name,
		Price: *req.Price,
	}

	if err := h.store.CreateProduct(&product); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "New product added successfully", "product": product})
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %d", id)})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.store.ListProducts()
	if err != nil {
		serverError(c, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %d", id)})
			return
		}
		serverError(c, err)
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product.Name = req.Name
	product.Price = *req.Price

	if err := h.store.UpdateProduct(product); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product updated successfully", "product": product})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product not found with ID: %d", id)})
			return
		}
		serverError(c, err)
		return
	}

	if err := h.store.DeleteProduct(product); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed successfully"})
}
