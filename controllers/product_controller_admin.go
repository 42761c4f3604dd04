package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services"
)

// productAdminJSON additionally exposes the download asset.
func productAdminJSON(p models.Product) gin.H {
	j := productJSON(p)
	j["asset"] = p.Asset
	return j
}

// CreateProduct accepts a multipart form: title, description, price,
// category plus thumbnail and asset files.
func (ctl *ProductController) CreateProduct(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	categoryID, err := primitive.ObjectIDFromHex(c.PostForm("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	thumbnail, ok, err := formFile(c, "thumbnail")
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thumbnail file is required"})
		return
	}
	asset, ok, err := formFile(c, "asset")
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Asset file is required"})
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	price := c.PostForm("price")
	if title == "" || description == "" || price == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	product, err := ctl.products.Create(c.Request.Context(), user, services.CreateProductInput{
		Title:       title,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		Thumbnail:   thumbnail,
		Asset:       asset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product created", "data": productAdminJSON(*product)})
}

// UpdateProduct takes the same multipart form with every field
// optional; thumbnailPublicId/assetPublicId name the files being
// replaced.
func (ctl *ProductController) UpdateProduct(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	input := services.UpdateProductInput{}
	if v, ok := c.GetPostForm("title"); ok {
		input.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		input.Price = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		categoryID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		input.CategoryID = &categoryID
	}

	input.Thumbnail, err = formFileUpdate(c, "thumbnail", "thumbnailPublicId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thumbnail upload"})
		return
	}
	input.Asset, err = formFileUpdate(c, "asset", "assetPublicId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset upload"})
		return
	}

	product, err := ctl.products.Update(c.Request.Context(), user, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "data": productAdminJSON(*product)})
}

func (ctl *ProductController) DeleteProduct(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := ctl.products.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "id": id.Hex()})
}
