package payments

import "errors"

var ErrNegativeAmount = errors.New("payment amount must not be negative")
