package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/middleware"
)

func (ctl *OrderController) GetOrdersAdmin(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := ctl.orders.ListAll(c.Request.Context(), user, page, pageSize)
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
		"count":      len(data),
		"data":       data,
		"totalPages": result.TotalPages,
	})
}
