package ghs

import (
	"fmt"

	"github.com/turtacn/ghscrunch/pkg/errors"
)

// Diagnostic is an informational finding that did not stop processing,
// such as an unrecognized variant or a malformed page.
type Diagnostic struct {
	Dataset  string           `json:"dataset"`
	Source   string           `json:"source"`
	Location string           `json:"location"`
	Code     errors.ErrorCode `json:"code"`
	Message  string           `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %s [%s] %s", d.Dataset, d.Source, d.Location, d.Code, d.Message)
}

// NewDiagnostic builds a Diagnostic from an error, taking the code from the
// first AppError in its chain.
func NewDiagnostic(dataset, source, location string, err error) Diagnostic {
	return Diagnostic{
		Dataset:  dataset,
		Source:   source,
		Location: location,
		Code:     errors.GetCode(err),
		Message:  err.Error(),
	}
}
