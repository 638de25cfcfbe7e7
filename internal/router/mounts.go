package router

import (
	"io/fs"
	"sort"
	"strings"
	"sync"
)

// Mount はパスプレフィックスとファイルシステムの対応
type Mount struct {
	Prefix string `json:"prefix"`
	Source string `json:"source"` // ディレクトリパスなど表示用の名前
	FS     fs.FS  `json:"-"`
}

// MountTable はアセットのマウントを管理するインターフェース
type MountTable interface {
	// Add はマウントを追加する。同じプレフィックスが登録済みなら false を返す
	Add(m Mount) bool

	// Match はパスに一致するマウントを返す
	Match(path string) (Mount, bool)

	// Mounts は登録済みのマウントをプレフィックス順に返す
	Mounts() []Mount
}

// DefaultMountTable は MountTable のデフォルト実装
// 複数のマウントが一致する場合は最も長いプレフィックスを選ぶ
type DefaultMountTable struct {
	mu     sync.RWMutex
	mounts map[string]Mount
}

// NewMountTable は空の MountTable を作成する
func NewMountTable() MountTable {
	return &DefaultMountTable{
		mounts: make(map[string]Mount),
	}
}

// Add はマウントを追加する
func (t *DefaultMountTable) Add(m Mount) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.mounts[m.Prefix]; exists {
		return false
	}
	t.mounts[m.Prefix] = m
	return true
}

// Match はパスの先頭に一致するマウントのうち、最長のものを返す
func (t *DefaultMountTable) Match(path string) (Mount, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var (
		best  Mount
		found bool
	)
	for prefix, m := range t.mounts {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if !found || len(prefix) > len(best.Prefix) {
			best = m
			found = true
		}
	}
	return best, found
}

// Mounts は登録済みのマウントを返す
func (t *DefaultMountTable) Mounts() []Mount {
	t.mu.RLock()
	defer t.mu.RUnlock()

	mounts := make([]Mount, 0, len(t.mounts))
	for _, m := range t.mounts {
		mounts = append(mounts, m)
	}
	sort.Slice(mounts, func(i, j int) bool {
		return mounts[i].Prefix < mounts[j].Prefix
	})
	return mounts
}
