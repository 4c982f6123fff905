//go:build darwin

package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ORTLibEnv               = "ORT_LIB_PATH"
	darwinSharedLibraryName = "libonnxruntime.dylib"
)

// 优先显式路径，其次 $ORT_LIB_PATH，再找当前目录和可执行文件旁边的 dylib
func resolveORTSharedLibraryPath(libPath string) (string, error) {
	candidates := []string{libPath, os.Getenv(ORTLibEnv), darwinSharedLibraryName}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), darwinSharedLibraryName))
	}
	found, checked := firstExisting(candidates)
	if found == "" {
		return "", fmt.Errorf("cannot find %s, checked: %s", darwinSharedLibraryName, strings.Join(checked, ", "))
	}
	return found, nil
}

func configureORTSearchPath(libDir string) {
	prependPathEnv("DYLD_LIBRARY_PATH", libDir)
}
