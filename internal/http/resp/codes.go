package resp

// Codes carried in the "code" field of JSON responses.
const (
	CodeOK            = "OK"
	CodeIgnored       = "IGNORED"
	CodeBadRequest    = "BAD_REQUEST"
	CodeBadGateway    = "BAD_GATEWAY"
	CodeInternalError = "INTERNAL_ERROR"
)
