package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// purchasedProductJSON adds the download asset to the public product
// shape. Only order details use it, after the owner-or-admin check.
func purchasedProductJSON(p models.Product) gin.H {
	j := productJSON(p)
	j["asset"] = p.Asset
	return j
}

func orderJSON(o models.Order) gin.H {
	return gin.H{
		"id":       o.ID.Hex(),
		"userId":   o.UserID.Hex(),
		"products": o.ProductIDs,
		"price":    models.FormatPrice(o.PriceMinor),
		"payment": gin.H{
			"providerOrderId": o.Payment.ProviderOrderID,
			"paymentId":       o.Payment.PaymentID,
			"status":          o.Payment.Status,
		},
		"createdAt": o.CreatedAt,
	}
}

func (ctl *OrderController) GetOrders(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := ctl.orders.ListMine(c.Request.Context(), user, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(result.Data))
	for _, o := range result.Data {
		data = append(data, orderJSON(o))
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Fetch success",
		"data":       data,
		"totalPages": result.TotalPages,
	})
}

func (ctl *OrderController) GetOrderByID(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	resolved, err := ctl.orders.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}

	// The purchase grants the download: order details render the
	// product with its asset, for the owner the service already
	// authorized (or an admin).
	products := make([]gin.H, 0, len(resolved.Products))
	for _, p := range resolved.Products {
		products = append(products, purchasedProductJSON(p))
	}
	data := orderJSON(*resolved.Order)
	data["products"] = products

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": data})
}
