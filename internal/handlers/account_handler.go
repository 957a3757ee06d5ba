package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksudea/CT-ecommerce-api/internal/models"
	"github.com/ksudea/CT-ecommerce-api/internal/store"
)

type AccountHandler struct {
	store *store.Store
}

func NewAccountHandler(st *store.Store) *AccountHandler {
	return &AccountHandler{store: st}
}

type AccountRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	CustomerID uint   `json:"customer_id" binding:"required"`
}

// POST /customeraccounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if _, err := h.store.GetCustomer(req.CustomerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Customer not found with ID: %d", req.CustomerID)})
			return
		}
		serverError(c, err)
		return
	}

	account := models.CustomerAccount{
		Username:   req.Username,
		Password:   req.Password,
		CustomerID: req.CustomerID,
	}

	// A duplicate username trips the unique index and surfaces as a store
	// fault, matching the 500 contract for constraint violations.
	if err := h.store.CreateAccount(&account); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "New customer account added successfully", "account": account})
}

// GET /customeraccounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	account, err := h.store.GetAccount(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Customer account not found with ID: %d", id)})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// PUT /customeraccounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	account, err := h.store.GetAccount(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Customer account not found with ID: %d", id)})
			return
		}
		serverError(c, err)
		return
	}

	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if _, err := h.store.GetCustomer(req.CustomerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Customer not found with ID: %d", req.CustomerID)})
			return
		}
		serverError(c, err)
		return
	}

	account.Username = req.Username
	account.Password = req.Password
	account.CustomerID = req.CustomerID

	if err := h.store.UpdateAccount(account); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Customer account updated successfully", "account": account})
}

// DELETE /customeraccounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	account, err := h.store.GetAccount(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Customer account not found with ID: %d", id)})
			return
		}
		serverError(c, err)
		return
	}

	if err := h.store.DeleteAccount(account); err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer account removed successfully"})
}
