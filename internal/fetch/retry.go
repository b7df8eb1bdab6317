package fetch

import (
	"context"
	"errors"
)

var ErrRetriesExhausted = errors.New("retries exhausted")

// Retry 执行 attempt；若 remedy 判定结果需要补救（并已对会话施加了补救动作），则重试。
// 最多重试 maxRetries 次，返回值中的 int 为实际重试次数。
// attempt 返回的错误直接透传，不会触发重试。
func Retry[T any](
	ctx context.Context,
	maxRetries int,
	attempt func(ctx context.Context) (T, error),
	remedy func(ctx context.Context, result T) (bool, error),
) (T, int, error) {
	var zero T
	retries := 0
	for {
		res, err := attempt(ctx)
		if err != nil {
			return zero, retries, err
		}
		again, err := remedy(ctx, res)
		if err != nil {
			return zero, retries, err
		}
		if !again {
			return res, retries, nil
		}
		if retries >= maxRetries {
			return zero, retries, ErrRetriesExhausted
		}
		retries++
	}
}
