//go:build !windows

package model

import "os"

func setNativeEnv(key, value string) {
	_ = os.Setenv(key, value)
}
