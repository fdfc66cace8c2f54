package services

import "errors"

// ErrPremiumLocked means the content exists but the caller's plan does not
// unlock it. Handlers translate it to a 403 with an upgrade hint.
var ErrPremiumLocked = errors.New("premium content requires an upgraded plan")
