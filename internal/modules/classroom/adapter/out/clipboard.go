package out

import (
	"fmt"

	"github.com/atotto/clipboard"

	classroomout "chalk/internal/modules/classroom/port/out"
)

var clipboardWrite = clipboard.WriteAll

type SystemClipboard struct{}

func NewSystemClipboard() classroomout.Clipboard {
	return &SystemClipboard{}
}

func (c *SystemClipboard) Write(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("system clipboard is unavailable")
	}
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
