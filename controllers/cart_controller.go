package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func (ctl *CartController) AddToCart(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	added, err := ctl.carts.AddToCart(c.Request.Context(), user, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Added to cart"
	if !added {
		message = "Already in cart"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "productId": productID.Hex()})
}

func (ctl *CartController) GetCart(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	cart, err := ctl.carts.GetCart(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	products := make([]gin.H, 0, len(cart.Products))
	for _, p := range cart.Products {
		products = append(products, productJSON(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Fetch success",
		"data": gin.H{
			"id":       cart.Cart.ID,
			"products": products,
			"total":    models.FormatPrice(cart.TotalMinor()),
		},
	})
}

func (ctl *CartController) RemoveFromCart(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId"})
		return
	}

	if err := ctl.carts.RemoveFromCart(c.Request.Context(), user, productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "productId": productID.Hex()})
}

func (ctl *CartController) ClearCart(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := ctl.carts.ClearCart(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
