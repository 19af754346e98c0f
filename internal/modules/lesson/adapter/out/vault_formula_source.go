package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lessonout "chalk/internal/modules/lesson/port/out"
	apperrors "chalk/internal/platform/errors"
)

type VaultFormulaSource struct {
	path string
}

func NewVaultFormulaSource(vaultPath string) lessonout.FormulaSource {
	return &VaultFormulaSource{path: filepath.Join(vaultPath, "formulas.md")}
}

func (s *VaultFormulaSource) Load(_ context.Context) (string, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read formula sheet: %w", err)
	}
	return string(content), nil
}
