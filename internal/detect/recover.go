package detect

import (
	"cda/internal/logging"
	"cda/internal/model"
)

// RunLevel executes one detection sub-pass with panic isolation. A
// failing level contributes nothing; other levels still produce
// findings. Detection never propagates a failure outward.
func RunLevel(logger *logging.Logger, level string, fn func() []*model.Cycle) (cycles []*model.Cycle) {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Detection sub-pass failed, skipping level", map[string]interface{}{
				"level": level,
				"cause": r,
			})
			cycles = nil
		}
	}()
	return fn()
}
