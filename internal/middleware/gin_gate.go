package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRouteGate adapts the net/http RouteGate to Gin so the decision table
// stays framework-agnostic and testable on its own.
func GinRouteGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := RouteGate(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the gate already redirected, stop the Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
