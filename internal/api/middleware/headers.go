package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const jsonMediaType = "application/json"

// RequireJSON rejects requests whose Accept or Content-Type header does not
// mention application/json. Parameters such as charset are allowed.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !mentionsJSON(c.GetHeader("Accept")) || !mentionsJSON(c.GetHeader("Content-Type")) {
			c.AbortWithStatusJSON(http.StatusNotAcceptable, gin.H{
				"message": "Only application/json is supported",
			})
			return
		}
		c.Next()
	}
}

func mentionsJSON(value string) bool {
	return strings.Contains(strings.ToLower(value), jsonMediaType)
}
