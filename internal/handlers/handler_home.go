package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Document ingestion API v1"})
}

// registerHomeRoutes registers the root status route
func registerHomeRoutes(group *gin.RouterGroup) {
	group.GET("/", getHome)
}
