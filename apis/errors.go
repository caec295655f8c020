package apis

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError 表示服务端返回的非 2xx HTTP 响应。
type APIError struct {
	StatusCode int
	Body       []byte

	// Code 是从响应 body 中解析出的错误码（如果有）。
	Code string
	// Message 是从响应 body 中解析出的错误消息（如果有）。
	Message string
}

// Error 实现 error 接口。
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d, body: %s", e.StatusCode, string(e.Body))
}

// NewAPIError 创建 APIError 并尝试从 JSON body 中解析结构化字段。
func NewAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode, Body: body}
	e.Code, e.Message = parseAPIErrorBody(body)
	return e
}

// parseAPIErrorBody 尝试从 JSON body 中解析 code、message/error 字段。
func parseAPIErrorBody(body []byte) (code, message string) {
	if len(body) == 0 {
		return "", ""
	}
	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Message == "" {
			parsed.Message = parsed.Err
		}
		return parsed.Code, parsed.Message
	}
	return "", ""
}

// ConnectionError 表示传输层失败（服务不可达、连接中断等），
// 区别于服务端已收到请求但返回非 2xx 的 APIError。
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsNotFound 判断错误是否为"未找到"类型。
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsConflict 判断错误是否为"已存在"（409）类型。
func IsConflict(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusConflict
	}
	return false
}
