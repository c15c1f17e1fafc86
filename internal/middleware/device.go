package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imbecis/app-imbecis/internal/device"
	"github.com/imbecis/app-imbecis/internal/services"
)

// DeviceUUID forwards the caller's device-uuid header to backend calls made
// while serving the request. Requests without the header use the server's
// own device identity.
func DeviceUUID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if values, ok := c.Request.Header[http.CanonicalHeaderKey(services.DeviceHeader)]; ok && len(values) > 0 {
			c.Set("DeviceUUID", values[0])
			c.Request = c.Request.WithContext(device.WithID(c.Request.Context(), values[0]))
		}
		c.Next()
	}
}
