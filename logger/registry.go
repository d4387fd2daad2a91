package logger

import "sync"

// byComponent maps a component name ("divide", "config", "bench") to its
// *Logger.
var byComponent sync.Map

// Register makes l the logger returned by Get for component.
func Register(component string, l *Logger) {
	byComponent.Store(component, l)
}

// Get returns the logger registered for component. An unregistered component
// gets the current global logger tagged with its name, so Get never returns
// nil and follows a later Init.
func Get(component string) *Logger {
	if l, ok := byComponent.Load(component); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(component)
}

// RegisterDefaults pins component loggers derived from the global logger.
// Call it after Init; later Init calls do not reach pinned loggers.
func RegisterDefaults(components ...string) {
	global := GetGlobalLogger()
	for _, c := range components {
		Register(c, global.WithComponent(c))
	}
}
