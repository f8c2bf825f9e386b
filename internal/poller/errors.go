package poller

import "codeberg.org/veland/scrubmon/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig   = errors.ErrorCode("poller_invalid_config")
	ErrInvalidEndpoint = errors.ErrorCode("poller_invalid_endpoint")

	// Fetch Errors
	ErrFetchFailed  = errors.ErrorCode("poller_fetch_failed")
	ErrBadStatus    = errors.ErrorCode("poller_unexpected_status")
	ErrDecodeFailed = errors.ErrorCode("poller_decode_failed")
)
