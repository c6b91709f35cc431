package pg

import "errors"

var (
	ErrFailedToParseConfig = errors.New("failed to parse postgres connection config")
	ErrPostgresNotReady    = errors.New("postgres did not become ready within the given time period")
	ErrHealthcheckFailed   = errors.New("postgres healthcheck failed")
)
