package errcode

// Error codes returned in API error bodies:
// - 0: no error
// - 4xxx: caller input problems, never retried
// - 5xxx: system errors
const (
	OK                   = 0
	InvalidRequest       = 4000
	ConstraintViolation  = 4001
	NotFound             = 4004
	DuplicateKey         = 4009
	ReferentialViolation = 4022
	RateLimited          = 4029
	SystemError          = 5000
	StoreUnavailable     = 5003
)
