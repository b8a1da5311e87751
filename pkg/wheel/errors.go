package wheel

import "errors"

var (
	// ErrUpstreamFailure 上游无法给出可用结果：传输错误、拒绝、索引越界
	ErrUpstreamFailure = errors.New("spin result provider failed")

	// ErrSpinInProgress 已有旋转在等待上游或播放动画
	ErrSpinInProgress = errors.New("spin already in progress")

	// ErrAlreadySpun 单次旋转模式下已经转过
	ErrAlreadySpun = errors.New("wheel has already been spun")

	// ErrWinnerOutOfRange 中奖索引不在 [0, sectorCount) 内
	ErrWinnerOutOfRange = errors.New("winner index out of range")
)
