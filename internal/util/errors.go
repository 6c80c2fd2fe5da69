package util

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

// SafeErrorResponse returns a JSON error response, logging the full cause
// but only exposing a user-actionable message. Detailed errors leak in
// development mode only.
func SafeErrorResponse(c *gin.Context, statusCode int, userMessage string, err error) {
	if err != nil {
		log.Printf("[ERROR] %s: %v", c.Request.URL.Path, err)
	}

	response := gin.H{
		"error": userMessage,
	}

	if os.Getenv("GIN_MODE") != "release" && err != nil {
		response["detail"] = err.Error()
	}

	c.JSON(statusCode, response)
}
