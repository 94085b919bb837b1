package startup

import "errors"

var (
	ErrMissingStartupID   = errors.New("missing startup_id in request body")
	ErrStartupNotFound    = errors.New("startup not found")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrAnalysisTimedOut   = errors.New("analysis timed out")

	ErrFinetunedModelMissing = errors.New("fine-tuned model is not configured")
)
