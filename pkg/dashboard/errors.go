package dashboard

import "errors"

var ErrInvalidReport = errors.New("invalid report request")
