package availability

import "errors"

var (
	// ErrUnknownService means the requested service id does not exist or
	// is inactive.
	ErrUnknownService = errors.New("unknown or inactive service")
	// ErrUnknownAgent means the requested agent id does not exist, is not
	// an agent, or is inactive.
	ErrUnknownAgent = errors.New("unknown or inactive agent")
	// ErrPastDate means the requested date is before today.
	ErrPastDate = errors.New("date must be today or later")
	// ErrBadDate means the date failed to parse.
	ErrBadDate = errors.New("date must be formatted YYYY-MM-DD")
	// ErrBadInterval means a blocked interval's bounds are inverted or in
	// the past.
	ErrBadInterval = errors.New("invalid blocked interval bounds")
	// ErrBadRule means a submitted weekly rule is malformed.
	ErrBadRule = errors.New("invalid availability rule")
)
