package models

import (
	"context"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
)

var (
	// UploadSessionTTL bounds how long an abandoned session context is kept.
	UploadSessionTTL = 60 * time.Minute

	uploadSessionContexts = ttlworker.NewCache[string, *UploadSessionContext](UploadSessionTTL)
	uploadSessionMu       sync.RWMutex
)

// UploadSessionContext carries the cancellation handle of one in-flight
// upload started from the widget bridge.
type UploadSessionContext struct {
	Ctx    context.Context
	Cancel context.CancelFunc
}

// CreateUploadSessionContext registers a cancellable context for sessionId.
func CreateUploadSessionContext(sessionId string) context.Context {
	uploadSessionMu.Lock()
	defer uploadSessionMu.Unlock()
	ctx, cancel := context.WithCancel(context.Background())
	uploadSessionContexts.Set(sessionId, &UploadSessionContext{
		Ctx:    ctx,
		Cancel: cancel,
	})
	return ctx
}

// CancelUploadSession cancels the session's context. Returns false when the
// session is unknown or already finished.
func CancelUploadSession(sessionId string) bool {
	uploadSessionMu.Lock()
	defer uploadSessionMu.Unlock()
	sessCtx := uploadSessionContexts.Get(sessionId)
	if sessCtx == nil {
		return false
	}
	sessCtx.Cancel()
	uploadSessionContexts.Delete(sessionId)
	return true
}

// FinishUploadSession releases the session's context after the upload ended.
func FinishUploadSession(sessionId string) {
	uploadSessionMu.Lock()
	defer uploadSessionMu.Unlock()
	if sessCtx := uploadSessionContexts.Get(sessionId); sessCtx != nil {
		sessCtx.Cancel()
		uploadSessionContexts.Delete(sessionId)
	}
}

// IsUploadSessionCancelled reports whether the session was cancelled (or is
// unknown, which callers treat the same way).
func IsUploadSessionCancelled(sessionId string) bool {
	uploadSessionMu.RLock()
	defer uploadSessionMu.RUnlock()
	sessCtx := uploadSessionContexts.Get(sessionId)
	if sessCtx == nil {
		return true
	}
	select {
	case <-sessCtx.Ctx.Done():
		return true
	default:
		return false
	}
}
