package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"meal-generator/internal/pkg/common"

	"go.uber.org/zap"
)

// LoadFunc 載入一份完整的唯讀資料
type LoadFunc[T any] func(ctx context.Context) (T, error)

type snapshotEntry[T any] struct {
	value    T
	loadedAt time.Time
}

// Snapshot 有存活時間的唯讀快照
//
// 第一次使用時載入，過期後由單一呼叫者重新載入並以指標交換替換；
// 讀取者只會看到完整的舊版或新版，不會看到修改中的資料。
// 重新載入失敗時保留舊快照。
type Snapshot[T any] struct {
	name    string
	ttl     time.Duration
	load    LoadFunc[T]
	now     func() time.Time
	current atomic.Pointer[snapshotEntry[T]]
	loadMu  sync.Mutex
}

// NewSnapshot 創建快照
func NewSnapshot[T any](name string, ttl time.Duration, load LoadFunc[T]) *Snapshot[T] {
	return &Snapshot[T]{
		name: name,
		ttl:  ttl,
		load: load,
		now:  time.Now,
	}
}

// Get 取得目前的快照，必要時載入或刷新
func (s *Snapshot[T]) Get(ctx context.Context) (T, error) {
	e := s.current.Load()
	if e != nil && s.fresh(e) {
		return e.value, nil
	}

	if e == nil {
		// 尚未載入：所有呼叫者等待同一次載入
		s.loadMu.Lock()
		defer s.loadMu.Unlock()
		if e = s.current.Load(); e != nil {
			return e.value, nil
		}
		return s.reload(ctx, nil)
	}

	// 已過期：只有一個呼叫者刷新，其餘直接使用舊快照
	if !s.loadMu.TryLock() {
		return e.value, nil
	}
	defer s.loadMu.Unlock()
	if cur := s.current.Load(); cur != e {
		return cur.value, nil
	}
	return s.reload(ctx, e)
}

// Refresh 強制重新載入
func (s *Snapshot[T]) Refresh(ctx context.Context) (T, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.reload(ctx, s.current.Load())
}

// LoadedAt 目前快照的載入時間，未載入時為零值
func (s *Snapshot[T]) LoadedAt() time.Time {
	if e := s.current.Load(); e != nil {
		return e.loadedAt
	}
	return time.Time{}
}

func (s *Snapshot[T]) fresh(e *snapshotEntry[T]) bool {
	return s.ttl <= 0 || s.now().Sub(e.loadedAt) < s.ttl
}

// reload 呼叫前須持有 loadMu
func (s *Snapshot[T]) reload(ctx context.Context, prev *snapshotEntry[T]) (T, error) {
	start := s.now()
	value, err := s.load(ctx)
	if err != nil {
		if prev == nil {
			var zero T
			return zero, fmt.Errorf("load %s snapshot: %w", s.name, err)
		}
		// 保留舊快照，並延後下一次嘗試
		s.current.Store(&snapshotEntry[T]{value: prev.value, loadedAt: start})
		common.LogWarn("快照刷新失敗，沿用舊資料",
			zap.String("snapshot", s.name),
			zap.Error(err),
		)
		return prev.value, nil
	}

	s.current.Store(&snapshotEntry[T]{value: value, loadedAt: start})
	common.LogDebug("快照已載入",
		zap.String("snapshot", s.name),
		zap.Duration("duration", s.now().Sub(start)),
	)
	return value, nil
}
