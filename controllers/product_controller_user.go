package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
	"marketplace/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// productJSON is the public product shape: price as a decimal
// string, no download asset.
func productJSON(p models.Product) gin.H {
	return gin.H{
		"id":          p.ID.Hex(),
		"owner":       p.OwnerID.Hex(),
		"title":       p.Title,
		"description": p.Description,
		"price":       models.FormatPrice(p.PriceMinor),
		"category":    p.CategoryID.Hex(),
		"thumbnail":   p.Thumbnail,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}

func (ctl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := ctl.products.List(c.Request.Context(), services.ListProductsInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]gin.H, 0, len(result.Data))
	for _, p := range result.Data {
		data = append(data, productJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Fetch success",
		"data":       data,
		"totalPages": result.TotalPages,
	})
}

func (ctl *ProductController) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, err := ctl.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": productJSON(*product)})
}
