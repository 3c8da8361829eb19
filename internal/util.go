package internal

import (
	"log"

	"github.com/gin-gonic/gin"
)

func logAction(c *gin.Context, action, details string) {
	log.Printf("[%s] action=%s %s", requestID(c), action, details)
}

func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return "-"
}
