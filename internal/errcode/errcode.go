package errcode

// Error code conventions:
// - 0: no error
// - 4xxx: request-level failures the caller can act on
// - 5xxx: system errors
const (
	OK                 = 0
	BadRequest         = 4000
	Unauthenticated    = 4001
	ResourceMissing    = 4004
	DuplicateAccount   = 4009
	InvalidCredentials = 4012
	SystemError        = 5000
	GenerationFailed   = 5002
)
