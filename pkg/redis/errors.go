package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("redis connection URL is not a valid redis:// URL")
	ErrRedisNotReady                = errors.New("redis did not answer PING before the connect timeout expired")
	ErrEmptyConnectionURL           = errors.New("redis connection URL is not set")
	ErrHealthcheckFailed            = errors.New("redis healthcheck ping failed")
)
