package domain

import "errors"

var (
	ErrUnsupportedLocale   = errors.New("unsupported locale")
	ErrInvalidPermission   = errors.New("invalid notification permission")
	ErrUnknownMessageType  = errors.New("unknown message type")
	ErrEntryNotFound       = errors.New("cache entry not found")
	ErrAssetFetch          = errors.New("asset fetch failed")
	ErrInvalidExamDate     = errors.New("invalid exam start date")
	ErrInstallNotCompleted = errors.New("install has not completed")
)
