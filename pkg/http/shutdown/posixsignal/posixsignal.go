// Package posixsignal provides a shutdown manager triggered by POSIX
// signals (SIGINT/SIGTERM by default).
package posixsignal

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sibylline/sibyl/pkg/http/shutdown"
)

// Name defines the manager name.
const Name = "PosixSignalManager"

// PosixSignalManager implements shutdown.ShutdownManager.
type PosixSignalManager struct {
	signals []os.Signal
}

// NewPosixSignalManager creates a manager for the given signals,
// defaulting to SIGINT and SIGTERM.
func NewPosixSignalManager(sig ...os.Signal) *PosixSignalManager {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}
	return &PosixSignalManager{signals: sig}
}

func (posixSignalManager *PosixSignalManager) GetName() string {
	return Name
}

// Start waits for one of the configured signals on a goroutine, then
// runs the shutdown flow and exits.
func (posixSignalManager *PosixSignalManager) Start(gs shutdown.GSInterface) error {
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, posixSignalManager.signals...)
		<-c

		gs.StartShutdown(posixSignalManager)
		os.Exit(0)
	}()
	return nil
}

func (posixSignalManager *PosixSignalManager) ShutdownStart() error {
	return nil
}

func (posixSignalManager *PosixSignalManager) ShutdownFinish() error {
	return nil
}
