package config

import "errors"

// ErrInvalidConfiguration 配置错误
// 非正的扇区数量、时长、粒子寿命等都包装此错误，在构造阶段立即失败，不做静默修正。
var ErrInvalidConfiguration = errors.New("invalid configuration")
