// Package goroutine launches background work that must not take the process down on panic.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/logger"
)

// SafeGo runs fn in a goroutine and reports its outcome on the returned
// channel. A panic is logged with its stack and delivered as an error.
// The channel receives at most one value and is closed when fn returns.
func SafeGo(log logger.Interface, name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				done <- fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			done <- err
		}
	}()
	return done
}
