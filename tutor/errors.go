package tutor

import "errors"

// Submission rejections. All leave the transcript untouched; callers that
// want silent-drop behavior can ignore them.
var (
	// ErrEmptyPrompt is returned when the prompt is empty after trimming.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrBusy is returned while a previous turn is still streaming.
	ErrBusy = errors.New("a turn is already streaming")
	// ErrClosed is returned when the surface has not been opened.
	ErrClosed = errors.New("surface is closed")
)
