package http

const (
	headerRequestID = "X-Request-ID"
	ctxKeyRequestID = "request_id"

	corsAllowMethods = "GET,POST,OPTIONS"
	corsMaxAge       = 600
)

const (
	HTTPErrorForbiddenText       = "forbidden"
	HTTPErrorForbiddenHostText   = "forbidden host"
	HTTPErrorForbiddenOriginText = "forbidden origin"
	HTTPErrorNoSessionText       = "wallet not found"
	HTTPErrorInternalText        = "internal error"
)
