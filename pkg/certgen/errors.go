package certgen

import (
	"errors"
	"fmt"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
)

// ErrResourceUnavailable indicates a font, template, table or config file is missing.
var ErrResourceUnavailable = models.ErrResourceUnavailable

// ErrMalformedRecord indicates a missing column or a blank required field.
var ErrMalformedRecord = models.ErrMalformedRecord

// ErrLayoutFailed indicates a name that fits the template at no allowed size.
var ErrLayoutFailed = models.ErrLayoutFailed

// ErrInvalidConfig indicates a configuration that cannot be run.
var ErrInvalidConfig = errors.New("invalid configuration")

// Stage names the step of a record's processing that failed.
type Stage string

const (
	StageTemplate  Stage = "template"
	StageName      Stage = "name"
	StageParagraph Stage = "paragraph"
	StageSave      Stage = "save"
)

// RecordError represents a failure while generating one certificate.
type RecordError struct {
	Row   int
	Email string
	Stage Stage
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record at row %d (%s) failed at %s: %v", e.Row, e.Email, e.Stage, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError.
func NewRecordError(rec models.Record, stage Stage, err error) *RecordError {
	return &RecordError{
		Row:   rec.Row,
		Email: rec.Email,
		Stage: stage,
		Err:   err,
	}
}
