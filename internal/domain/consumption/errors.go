package consumption

import "errors"

var ErrConsumptionExists = errors.New("consumption already registered for student on date")
