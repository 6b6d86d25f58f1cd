package stores

import "errors"

var errNullSnapshot = errors.New("snapshot is null")
