// Package router keeps a table of exact-path routes that can be added and
// removed while the gin engine is serving.
package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"agree-disagree/internal/transport/httpdto"
	agree_errors "agree-disagree/pkg/errors"
	"agree-disagree/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router dispatches requests that the engine's static tree does not match.
// Only the table lookup is locked. A handler that was looked up before its
// route was removed still runs; owners that need a cut-off enforce it themselves.
type Router struct {
	engine *gin.Engine
	logger *logger.Logger

	mu     sync.RWMutex
	routes map[string]gin.HandlerFunc
}

func New(engine *gin.Engine, l *logger.Logger) *Router {
	r := &Router{
		engine: engine,
		logger: logger.OrDefault(l).Named("router"),
		routes: make(map[string]gin.HandlerFunc),
	}
	engine.NoRoute(r.dispatch)
	return r
}

func (r *Router) Register(path string, h gin.HandlerFunc) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("register %q: %w", path, agree_errors.ErrInvalidInput)
	}
	if h == nil {
		return fmt.Errorf("register %q: nil handler: %w", path, agree_errors.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.routes[path]; exists {
		return fmt.Errorf("register %q: %w", path, agree_errors.ErrAlreadyRegistered)
	}
	r.routes[path] = h
	r.logger.Logger.Debug("route registered", zap.String("path", path))
	return nil
}

func (r *Router) Unregister(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.routes[path]; !exists {
		return fmt.Errorf("unregister %q: %w", path, agree_errors.ErrNotRegistered)
	}
	delete(r.routes, path)
	r.logger.Logger.Debug("route unregistered", zap.String("path", path))
	return nil
}

func (r *Router) Registered(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.routes[path]
	return ok
}

// Paths returns the registered paths in lexical order.
func (r *Router) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func (r *Router) dispatch(c *gin.Context) {
	r.mu.RLock()
	h, ok := r.routes[c.Request.URL.Path]
	r.mu.RUnlock()

	if !ok {
		httpdto.WriteError(c, agree_errors.ErrRouteNotFound)
		return
	}
	h(c)
}
