//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/sys/unix"
)

// resizeWatcher delivers SIGWINCH as handler callbacks with the new size.
type resizeWatcher struct {
	fd      int
	handler func(cols, rows int)
	sigCh   chan os.Signal
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newResizeWatcher(fd int, handler func(cols, rows int)) *resizeWatcher {
	return &resizeWatcher{
		fd:      fd,
		handler: handler,
		sigCh:   make(chan os.Signal, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// start begins listening for SIGWINCH
func (r *resizeWatcher) start() {
	signal.Notify(r.sigCh, syscall.SIGWINCH)
	go r.watchLoop()
}

// stop stops the watcher and waits for the goroutine to exit
func (r *resizeWatcher) stop() {
	signal.Stop(r.sigCh)
	close(r.stopCh)
	<-r.doneCh
}

// watchLoop monitors for resize signals
func (r *resizeWatcher) watchLoop() {
	defer close(r.doneCh)

	// A panic in the handler would leave the terminal in raw mode
	defer func() {
		if p := recover(); p != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\nresize handler crashed: %v\r\n", p)
			fmt.Fprintf(os.Stderr, "%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.sigCh:
			cols, rows := r.getSize()
			if cols > 0 && rows > 0 {
				r.handler(cols, rows)
			}
		}
	}
}

// getSize returns current window dimensions, 0,0 when unavailable
func (r *resizeWatcher) getSize() (int, int) {
	ws, err := unix.IoctlGetWinsize(r.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0
	}
	return int(ws.Col), int(ws.Row)
}
