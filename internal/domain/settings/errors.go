package settings

import "errors"

var (
	ErrSettingsNotFound = errors.New("work hours settings not found")
)
