// Package middleware provides gin middleware for the query API.
//
// The package is organized into separate files by concern:
//
//   - recovery.go: Panic recovery middleware
//   - request_id.go: Request ID generation and tracking middleware
//   - logging.go: Structured request logging middleware
//   - metrics.go: HTTP metrics collection middleware
//   - security_headers.go: Security headers middleware
//
// Example usage:
//
//	router := gin.New()
//	router.Use(
//		middleware.PanicRecovery(logger),
//		middleware.RequestID(),
//		middleware.Logging(logger),
//		middleware.Metrics(registry),
//		middleware.SecurityHeaders(),
//	)
package middleware
