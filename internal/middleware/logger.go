package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI colors for terminal output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

var skipPaths = map[string]bool{
	"/health": true,
}

// Logger logs one line per request: method, path, status, latency, IP.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		statusColor := colorGreen
		switch {
		case status >= 500:
			statusColor = colorRed
		case status >= 400:
			statusColor = colorYellow
		case status >= 300:
			statusColor = colorCyan
		}

		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		log.Printf("%s%3d%s %-7s %s %s %s",
			statusColor, status, colorReset,
			c.Request.Method, path, latency, c.ClientIP())

		for _, e := range c.Errors.Errors() {
			log.Printf("%sERR%s %s", colorRed, colorReset, e)
		}
	}
}
