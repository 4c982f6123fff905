//go:build windows

package model

import (
	"os"
	"syscall"
	"unsafe"
)

// os.Setenv 只改 Go 运行时的副本，onnxruntime.dll 读的是进程环境块，两边都要写
var procSetEnvironmentVariable = syscall.NewLazyDLL("kernel32.dll").NewProc("SetEnvironmentVariableW")

func setNativeEnv(key, value string) {
	_ = os.Setenv(key, value)

	k, err := syscall.UTF16PtrFromString(key)
	if err != nil {
		return
	}
	v, err := syscall.UTF16PtrFromString(value)
	if err != nil {
		return
	}
	_, _, _ = procSetEnvironmentVariable.Call(uintptr(unsafe.Pointer(k)), uintptr(unsafe.Pointer(v)))
}
