package responses

import "github.com/address-dedupe/internal/dedupe"

// CompareResponse response kết quả so sánh
type CompareResponse struct {
	Status           dedupe.DuplicateStatus `json:"status"`             // Tên trạng thái, ví dụ "LIKELY_DUPLICATE"
	Code             int                    `json:"code"`               // Mã số của trạng thái
	CacheHit         bool                   `json:"cache_hit"`          // Có hit cache không
	ProcessingTimeMs int64                  `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// PlaceLanguagesResponse response danh sách ngôn ngữ đề xuất
type PlaceLanguagesResponse struct {
	Languages []string `json:"languages"` // Không bao giờ null
}

// StatusInfo mô tả một trạng thái được công bố
type StatusInfo struct {
	Name        string `json:"name"`         // Tên trạng thái
	Code        int    `json:"code"`         // Mã số
	IsDuplicate bool   `json:"is_duplicate"` // LIKELY hoặc EXACT
}

// StatusesResponse response danh sách trạng thái
type StatusesResponse struct {
	Statuses []StatusInfo `json:"statuses"`
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string `json:"error"`                // Mã lỗi
	Message   string `json:"message"`              // Thông báo lỗi
	RequestID string `json:"request_id,omitempty"` // ID của request
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
	Cache     interface{}       `json:"cache,omitempty"`
}
