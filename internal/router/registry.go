package router

import (
	"sort"
	"strings"
	"sync"
)

// Registry はルート（パスとメソッドの組）を管理するインターフェース
type Registry interface {
	// Register はハンドラを登録する。既に登録済みの組なら何もせず false を返す
	Register(path, method string, h Handler) bool

	// Lookup はハンドラを検索する
	// パスが未登録なら found=false、パスはあるがメソッドがなければ h=nil, found=true
	Lookup(path, method string) (h Handler, found bool)

	// Routes は登録済みのルートをパス、メソッドの順に並べて返す
	Routes() []Route
}

// Route は登録済みルートの情報
type Route struct {
	Path   string `json:"path"`
	Method string `json:"method"`
}

// DefaultRegistry は Registry のデフォルト実装
type DefaultRegistry struct {
	mu     sync.RWMutex
	routes map[string]map[string]Handler
}

// NewRegistry は空の Registry を作成する
func NewRegistry() Registry {
	return &DefaultRegistry{
		routes: make(map[string]map[string]Handler),
	}
}

// Register はハンドラを登録する
func (r *DefaultRegistry) Register(path, method string, h Handler) bool {
	method = strings.ToLower(method)

	r.mu.Lock()
	defer r.mu.Unlock()

	methods, ok := r.routes[path]
	if !ok {
		methods = make(map[string]Handler)
		r.routes[path] = methods
	}
	if _, exists := methods[method]; exists {
		return false
	}
	methods[method] = h
	return true
}

// Lookup はハンドラを検索する
func (r *DefaultRegistry) Lookup(path, method string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods, ok := r.routes[path]
	if !ok {
		return nil, false
	}
	return methods[strings.ToLower(method)], true
}

// Routes は登録済みのルートを返す
func (r *DefaultRegistry) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make([]Route, 0, len(r.routes))
	for path, methods := range r.routes {
		for method := range methods {
			routes = append(routes, Route{Path: path, Method: method})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
