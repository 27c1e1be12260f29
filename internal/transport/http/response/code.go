package response

// Client-safe error messages. Internal detail stays in the server log.
const (
	MsgValidation       = "Missing or invalid fields"
	MsgDuplicate        = "Email already registered"
	MsgDuplicateProduct = "Product already exists"
	MsgBadCreds         = "Invalid credentials"
	MsgUnauthorized     = "Unauthorized"
	MsgNotFound         = "Not found"
	MsgServerError      = "Internal server error"
	MsgTooLarge         = "Request body too large"
	MsgTTSUnavailable   = "speech synthesis unavailable"
)
