package models

import (
	"time"

	"github.com/address-dedupe/internal/dedupe"
)

// KindToponym là loại so sánh cho cả một toponym; các loại còn lại là tên field.
const KindToponym = "toponym"

// Verdict kết quả phân loại trùng lặp được lưu trong cache
type Verdict struct {
	Kind      string                 `json:"kind"`                // Tên field hoặc "toponym"
	Status    dedupe.DuplicateStatus `json:"status"`              // Trạng thái trùng lặp
	Languages []string               `json:"languages,omitempty"` // Ngôn ngữ đã dùng
	CreatedAt time.Time              `json:"created_at"`          // Thời gian tạo
}

// NewVerdict tạo mới một Verdict
func NewVerdict(kind string, status dedupe.DuplicateStatus, languages dedupe.LanguageSet) *Verdict {
	return &Verdict{
		Kind:      kind,
		Status:    status,
		Languages: languages.Clone(),
		CreatedAt: time.Now(),
	}
}
