package quote

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure. Callers decide retry and display
// from the kind alone.
type Kind string

const (
	KindInvalidCredential   Kind = "invalid_credential"
	KindInvalidRequest      Kind = "invalid_request"
	KindForbidden           Kind = "forbidden"
	KindRateLimited         Kind = "rate_limited"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindRequestFailed       Kind = "request_failed"
	KindTimeout             Kind = "timeout"
	KindNetworkFailure      Kind = "network_failure"
	KindEmptyResponse       Kind = "empty_response"
	KindMalformedResponse   Kind = "malformed_response"
)

// Retryable reports whether another attempt may succeed.
func (k Kind) Retryable() bool {
	switch k {
	case KindTimeout, KindRateLimited, KindUpstreamUnavailable, KindNetworkFailure:
		return true
	}
	return false
}

type Error struct {
	Kind    Kind
	Message string
	// StatusCode and Status are set for KindRequestFailed.
	StatusCode int
	Status     string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: messages[kind], Err: err}
}

var messages = map[Kind]string{
	KindInvalidCredential:   "API key không hợp lệ hoặc chưa được cấu hình",
	KindInvalidRequest:      "yêu cầu thiếu nội dung",
	KindForbidden:           "API key không có quyền truy cập dịch vụ",
	KindRateLimited:         "vượt giới hạn tần suất gọi API, vui lòng thử lại sau",
	KindUpstreamUnavailable: "máy chủ Gemini đang gặp sự cố, vui lòng thử lại sau",
	KindRequestFailed:       "gọi API thất bại",
	KindTimeout:             "yêu cầu quá thời gian chờ",
	KindNetworkFailure:      "lỗi kết nối mạng",
	KindEmptyResponse:       "API không trả về nội dung",
	KindMalformedResponse:   "không đọc được phản hồi của API",
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
