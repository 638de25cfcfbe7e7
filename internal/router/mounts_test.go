package router

import (
	"testing"
	"testing/fstest"
)

func TestMountTable_Match(t *testing.T) {
	table := NewMountTable()
	table.Add(Mount{Prefix: "/static", Source: "static"})
	table.Add(Mount{Prefix: "/static/vendor", Source: "vendor"})
	table.Add(Mount{Prefix: "/docs", Source: "docs"})

	testCases := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"完全一致", "/static", "static", true},
		{"配下のパス", "/static/", "static", true},
		{"長いプレフィックスを優先", "/static/vendor/lib", "vendor", true},
		{"別のマウント", "/docs/guide", "docs", true},
		{"一致なし", "/api", "", false},
		{"先頭以外は一致しない", "/x/static", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, ok := table.Match(tc.path)
			if ok != tc.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tc.wantOK)
			}
			if ok && m.Source != tc.want {
				t.Errorf("got %q, want %q", m.Source, tc.want)
			}
		})
	}
}

func TestMountTable_AddDuplicate(t *testing.T) {
	table := NewMountTable()
	if !table.Add(Mount{Prefix: "/static", Source: "first", FS: fstest.MapFS{}}) {
		t.Fatal("最初の追加は成功するはず")
	}
	if table.Add(Mount{Prefix: "/static", Source: "second"}) {
		t.Error("同じプレフィックスの追加は無視されるはず")
	}

	mounts := table.Mounts()
	if len(mounts) != 1 || mounts[0].Source != "first" {
		t.Errorf("got %+v", mounts)
	}
}
