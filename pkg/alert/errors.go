package alert

import "errors"

var ErrRenderFailed = errors.New("alert: failed to render incident email")
