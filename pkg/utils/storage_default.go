//go:build !android

package utils

// EnsureStorageDir 桌面和 iOS 上 gdata 会自行创建设置目录，无需处理
func EnsureStorageDir(appName string) error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串
func GetStoragePath() string {
	return ""
}
