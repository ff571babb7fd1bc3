package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-dedupe/app/config"
	"github.com/address-dedupe/app/requests"
	"github.com/address-dedupe/app/responses"
	"github.com/address-dedupe/app/services"
	"github.com/address-dedupe/helpers/utils"
	"github.com/address-dedupe/internal/dedupe"
)

const version = "1.0.0"

// DedupeController controller xử lý các request phân loại trùng lặp
type DedupeController struct {
	dedupeService *services.DedupeService
	logger        *zap.Logger
}

// NewDedupeController tạo mới DedupeController
func NewDedupeController(dedupeService *services.DedupeService, logger *zap.Logger) *DedupeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DedupeController{
		dedupeService: dedupeService,
		logger:        logger,
	}
}

func (dc *DedupeController) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), config.RequestTimeout())
}

// CompareField so sánh hai giá trị của field trong path
func (dc *DedupeController) CompareField(c *gin.Context) {
	ft, err := dedupe.ParseFieldType(c.Param("field"))
	if err != nil {
		dc.abort(c, http.StatusNotFound, "UNKNOWN_FIELD", "Field không được hỗ trợ: "+c.Param("field"))
		return
	}

	var req requests.CompareFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.abort(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
		return
	}

	startTime := time.Now()
	ctx, cancel := dc.requestContext(c)
	defer cancel()

	result, err := dc.dedupeService.CompareField(ctx, ft, req.Value1, req.Value2, req.Languages)
	if err != nil {
		dc.fail(c, err)
		return
	}
	dc.respond(c, result, startTime)
}

// CompareToponym so sánh hai toponym
func (dc *DedupeController) CompareToponym(c *gin.Context) {
	var req requests.CompareToponymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.abort(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
		return
	}

	startTime := time.Now()
	ctx, cancel := dc.requestContext(c)
	defer cancel()

	result, err := dc.dedupeService.CompareToponym(ctx, req.Labels1, req.Values1, req.Labels2, req.Values2, req.Languages)
	if err != nil {
		dc.fail(c, err)
		return
	}
	dc.respond(c, result, startTime)
}

// CompareAddresses so sánh hai địa chỉ thô
func (dc *DedupeController) CompareAddresses(c *gin.Context) {
	var req requests.CompareAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.abort(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
		return
	}

	startTime := time.Now()
	ctx, cancel := dc.requestContext(c)
	defer cancel()

	result, err := dc.dedupeService.CompareAddresses(ctx, req.Address1, req.Address2, req.Languages)
	if err != nil {
		dc.fail(c, err)
		return
	}
	dc.respond(c, result, startTime)
}

// PlaceLanguages đề xuất ngôn ngữ cho một toponym
func (dc *DedupeController) PlaceLanguages(c *gin.Context) {
	var req requests.PlaceLanguagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dc.abort(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
		return
	}

	ctx, cancel := dc.requestContext(c)
	defer cancel()

	langs, err := dc.dedupeService.PlaceLanguages(ctx, req.Labels, req.Values)
	if err != nil {
		dc.fail(c, err)
		return
	}
	out := make([]string, 0, len(langs))
	out = append(out, langs...)
	c.JSON(http.StatusOK, responses.PlaceLanguagesResponse{Languages: out})
}

// Statuses trả về danh sách trạng thái được công bố
func (dc *DedupeController) Statuses(c *gin.Context) {
	all := dedupe.AllStatuses()
	infos := make([]responses.StatusInfo, 0, len(all))
	for _, s := range all {
		infos = append(infos, responses.StatusInfo{Name: s.String(), Code: int(s), IsDuplicate: s.IsDuplicate()})
	}
	c.JSON(http.StatusOK, responses.StatusesResponse{Statuses: infos})
}

// HealthCheck kiểm tra sức khỏe service
func (dc *DedupeController) HealthCheck(c *gin.Context) {
	h := dc.dedupeService.Health(c.Request.Context())
	expander := "healthy"
	if !h.Ready {
		expander = "not_ready"
	}
	resp := responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    h.Uptime.String(),
		Version:   version,
		Services: map[string]string{
			"expander": expander,
			"backend":  h.Backend,
		},
	}
	if h.Cache != nil {
		resp.Cache = h.Cache
	}
	c.JSON(http.StatusOK, resp)
}

// Ready trả về 503 khi expander chưa sẵn sàng
func (dc *DedupeController) Ready(c *gin.Context) {
	if !dc.dedupeService.Ready() {
		dc.abort(c, http.StatusServiceUnavailable, "EXPANDER_NOT_READY", "Expander chưa được khởi tạo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live luôn trả về 200 khi process còn chạy
func (dc *DedupeController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (dc *DedupeController) respond(c *gin.Context, result *services.ComparisonResult, startTime time.Time) {
	c.JSON(http.StatusOK, responses.CompareResponse{
		Status:           result.Status,
		Code:             int(result.Status),
		CacheHit:         result.CacheHit,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// fail ánh xạ lỗi của service sang HTTP status
func (dc *DedupeController) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dedupe.ErrInvalidInput):
		dc.abort(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, dedupe.ErrUninitialized):
		dc.abort(c, http.StatusServiceUnavailable, "EXPANDER_NOT_READY", err.Error())
	case errors.Is(err, services.ErrParserUnavailable):
		dc.abort(c, http.StatusNotImplemented, "PARSER_UNAVAILABLE", err.Error())
	default:
		dc.logger.Error("Lỗi so sánh", zap.Error(err), zap.String("request_id", utils.GetRequestID(c)))
		dc.abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Lỗi xử lý: "+err.Error())
	}
}

func (dc *DedupeController) abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: utils.GetRequestID(c),
	})
}
