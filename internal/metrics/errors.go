package metrics

import "errors"

var errServerSide = errors.New("server side error")
