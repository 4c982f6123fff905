package model

import (
	"os"
	"path/filepath"
)

// prependPathEnv 把 dir 放到路径类环境变量最前面，已存在就不动
func prependPathEnv(key, dir string) {
	old := os.Getenv(key)
	for _, p := range filepath.SplitList(old) {
		if p == dir {
			return
		}
	}
	if old == "" {
		setNativeEnv(key, dir)
		return
	}
	setNativeEnv(key, dir+string(os.PathListSeparator)+old)
}

// firstExisting 依次检查候选路径（转成绝对路径并去重），返回第一个存在的普通文件
func firstExisting(candidates []string) (string, []string) {
	checked := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, p := range candidates {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		checked = append(checked, abs)
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			return abs, checked
		}
	}
	return "", checked
}
