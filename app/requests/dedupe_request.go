package requests

// CompareFieldRequest request so sánh hai giá trị của một field
type CompareFieldRequest struct {
	Value1    string   `json:"value1"`              // Giá trị thứ nhất
	Value2    string   `json:"value2"`              // Giá trị thứ hai
	Languages []string `json:"languages,omitempty"` // Ngôn ngữ (tùy chọn)
}

// CompareToponymRequest request so sánh hai toponym dạng nhãn/giá trị song song
type CompareToponymRequest struct {
	Labels1   []string `json:"labels1"`             // Nhãn của toponym thứ nhất
	Values1   []string `json:"values1"`             // Giá trị của toponym thứ nhất
	Labels2   []string `json:"labels2"`             // Nhãn của toponym thứ hai
	Values2   []string `json:"values2"`             // Giá trị của toponym thứ hai
	Languages []string `json:"languages,omitempty"` // Ngôn ngữ (tùy chọn)
}

// CompareAddressRequest request so sánh hai địa chỉ thô (cần libpostal)
type CompareAddressRequest struct {
	Address1  string   `json:"address1" binding:"required"` // Địa chỉ thứ nhất
	Address2  string   `json:"address2" binding:"required"` // Địa chỉ thứ hai
	Languages []string `json:"languages,omitempty"`         // Ngôn ngữ (tùy chọn)
}

// PlaceLanguagesRequest request đề xuất ngôn ngữ cho một toponym
type PlaceLanguagesRequest struct {
	Labels []string `json:"labels"` // Nhãn
	Values []string `json:"values"` // Giá trị
}
