// Package provider 提供中奖扇区：本地随机源、HTTP 客户端和开发服务器路由
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/decker502/prizewheel/pkg/utils"
)

// ErrBadResponse 非 2xx 状态或响应体格式错误
var ErrBadResponse = errors.New("bad spin response")

// Provider 决定一次旋转的中奖扇区
type Provider interface {
	RequestSpinResult(ctx context.Context) (int, error)
}

// SpinResponse POST /api/spin 的 JSON 响应体
type SpinResponse struct {
	SpinID      string `json:"spinId"`
	WinnerIndex int    `json:"winnerIndex"`
}

// Random 均匀随机选择扇区，可模拟网络延迟
type Random struct {
	mu      sync.Mutex
	rng     utils.Rand
	sectors int
	latency time.Duration
}

// NewRandom 创建覆盖 sectors 个扇区的本地随机源
func NewRandom(rng utils.Rand, sectors int, latency time.Duration) *Random {
	return &Random{rng: rng, sectors: sectors, latency: latency}
}

// RequestSpinResult 实现 Provider
func (r *Random) RequestSpinResult(ctx context.Context) (int, error) {
	if r.sectors <= 0 {
		return 0, fmt.Errorf("random provider has no sectors")
	}
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(r.sectors), nil
}

// HTTP 通过 POST {URL} 向远程服务请求中奖扇区
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP 创建带请求超时的客户端
func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{URL: url, Client: &http.Client{Timeout: timeout}}
}

// RequestSpinResult 实现 Provider
func (h *HTTP) RequestSpinResult(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader([]byte("{}")))
	if err != nil {
		return 0, fmt.Errorf("failed to build spin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("spin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, bytes.TrimSpace(body))
	}

	// winnerIndex 缺失时不能按零值处理（扇区 0 是大奖）
	var out struct {
		WinnerIndex *int `json:"winnerIndex"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if out.WinnerIndex == nil {
		return 0, fmt.Errorf("%w: missing winnerIndex", ErrBadResponse)
	}
	return *out.WinnerIndex, nil
}
