//go:build !darwin

package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// ORTLibEnv 没传 -ort-lib 时从这里取 onnxruntime 动态库路径
const ORTLibEnv = "ORT_LIB_PATH"

func resolveORTSharedLibraryPath(libPath string) (string, error) {
	if libPath == "" {
		libPath = os.Getenv(ORTLibEnv)
	}
	if libPath == "" {
		return "", fmt.Errorf("empty onnxruntime shared library path (set -lib or $%s)", ORTLibEnv)
	}
	return filepath.Abs(libPath)
}

func configureORTSearchPath(libDir string) {
	prependPathEnv("LD_LIBRARY_PATH", libDir)
}
