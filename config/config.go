package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load 读取当前目录下可选的 .env（文件不存在不算错误）；已有环境变量优先
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Env 读取字符串环境变量，未设置时返回 fallback
func Env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// EnvInt 读取整数环境变量，未设置或无法解析时返回 fallback
func EnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(Env(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// EnvInt64 同 EnvInt，用于随机种子
func EnvInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(Env(key, ""), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
