package models

import "errors"

// ErrResourceUnavailable indicates a font, template or table file is missing or unreadable.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ErrMalformedRecord indicates a missing column or a blank required field.
var ErrMalformedRecord = errors.New("malformed record")

// ErrLayoutFailed indicates text could not be fitted onto the template.
var ErrLayoutFailed = errors.New("layout failed")
