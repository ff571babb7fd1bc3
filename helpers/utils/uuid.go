package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader header chứa ID của request
const RequestIDHeader = "X-Request-ID"

// GenerateUUID tạo UUID v4
func GenerateUUID() string {
	return uuid.NewString()
}

// RequestID middleware gắn X-Request-ID cho mỗi request; giữ lại ID hợp lệ do client gửi
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = GenerateUUID()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID lấy ID của request hiện tại
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDHeader)
}
