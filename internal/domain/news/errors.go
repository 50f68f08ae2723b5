package news

import "errors"

var ErrNotFound = errors.New("news not found")
