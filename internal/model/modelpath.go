package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModelDirEnv 额外的模型搜索目录
const ModelDirEnv = "CHESS_MODEL_DIR"

// resolveModelPath 依次找：原路径、$CHESS_MODEL_DIR、可执行文件旁边
func resolveModelPath(modelPath string) (string, error) {
	if modelPath == "" {
		return "", fmt.Errorf("empty model path")
	}

	candidates := []string{modelPath}
	if !filepath.IsAbs(modelPath) {
		if dir := os.Getenv(ModelDirEnv); dir != "" {
			candidates = append(candidates, filepath.Join(dir, modelPath), filepath.Join(dir, filepath.Base(modelPath)))
		}
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			candidates = append(candidates, filepath.Join(exeDir, modelPath), filepath.Join(exeDir, filepath.Base(modelPath)))
		}
	}

	found, checked := firstExisting(candidates)
	if found == "" {
		return "", fmt.Errorf("model file not found, checked: %s", strings.Join(checked, ", "))
	}
	return found, nil
}
