package router

import (
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// APIModule mounts a group of routes under /api.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// Modules implementing prioritizer control mount order (lower first);
// everything else defaults to 100.
type prioritizer interface{ Priority() int }

// Registry collects API modules for one engine.
type Registry struct {
	mu   sync.Mutex
	mods []APIModule
}

func (r *Registry) Register(mod APIModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mods = append(r.mods, mod)
}

// MountAll mounts every registered module on the given group.
func (r *Registry) MountAll(api *gin.RouterGroup) {
	r.mu.Lock()
	mods := append([]APIModule(nil), r.mods...)
	r.mu.Unlock()

	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
