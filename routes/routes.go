// Package routes cung cấp tất cả routing functions cho Address Dedupe Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*) và health routes
// - web.go: Web routes (/, /docs)
//
// Sử dụng:
// routes.SetupAllRoutes(router, dedupeController)
package routes
