// Package shutdown coordinates graceful termination: managers listen for
// a trigger (e.g. POSIX signals) and run the registered callbacks before
// the process exits.
package shutdown

import "sync"

// ShutdownCallback is executed when shutdown is requested. The string
// argument names the manager that triggered it.
type ShutdownCallback interface {
	OnShutdown(string) error
}

// Func wraps a plain function as a ShutdownCallback.
type Func func(string) error

func (f Func) OnShutdown(shutdownManager string) error {
	return f(shutdownManager)
}

// ShutdownManager watches for a shutdown trigger and reports it through
// the GSInterface it was started with.
type ShutdownManager interface {
	GetName() string
	Start(gs GSInterface) error
	ShutdownStart() error
	ShutdownFinish() error
}

// ErrorHandler receives errors from callbacks and managers.
type ErrorHandler interface {
	OnError(err error)
}

// GSInterface is the surface a manager uses to run the shutdown flow.
type GSInterface interface {
	StartShutdown(sm ShutdownManager)
	ReportError(err error)
	AddShutdownCallback(shutdownCallback ShutdownCallback)
}

// GracefulShutdown is the main struct holding callbacks, managers and the
// error handler.
type GracefulShutdown struct {
	callbacks    []ShutdownCallback
	managers     []ShutdownManager
	errorHandler ErrorHandler
}

// New returns an empty GracefulShutdown.
func New() *GracefulShutdown {
	return &GracefulShutdown{
		callbacks: make([]ShutdownCallback, 0, 8),
		managers:  make([]ShutdownManager, 0, 2),
	}
}

// Start starts all added managers; the first failing manager aborts.
func (gs *GracefulShutdown) Start() error {
	for _, manager := range gs.managers {
		if err := manager.Start(gs); err != nil {
			return err
		}
	}
	return nil
}

// AddShutdownManager registers a manager; it is started by Start.
func (gs *GracefulShutdown) AddShutdownManager(manager ShutdownManager) {
	gs.managers = append(gs.managers, manager)
}

// AddShutdownCallback registers a callback run on shutdown.
func (gs *GracefulShutdown) AddShutdownCallback(shutdownCallback ShutdownCallback) {
	gs.callbacks = append(gs.callbacks, shutdownCallback)
}

// SetErrorHandler installs the handler invoked by ReportError.
func (gs *GracefulShutdown) SetErrorHandler(errorHandler ErrorHandler) {
	gs.errorHandler = errorHandler
}

// StartShutdown runs ShutdownStart on the triggering manager, all
// callbacks in parallel, then ShutdownFinish.
func (gs *GracefulShutdown) StartShutdown(sm ShutdownManager) {
	gs.ReportError(sm.ShutdownStart())

	var wg sync.WaitGroup
	for _, shutdownCallback := range gs.callbacks {
		wg.Add(1)
		go func(shutdownCallback ShutdownCallback) {
			defer wg.Done()
			gs.ReportError(shutdownCallback.OnShutdown(sm.GetName()))
		}(shutdownCallback)
	}
	wg.Wait()

	gs.ReportError(sm.ShutdownFinish())
}

// ReportError forwards a non-nil error to the error handler.
func (gs *GracefulShutdown) ReportError(err error) {
	if err != nil && gs.errorHandler != nil {
		gs.errorHandler.OnError(err)
	}
}
