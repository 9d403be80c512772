package domain

// Lifecycle states of the cache worker.
type LifecycleState string

const (
	StateParsed     LifecycleState = "parsed"
	StateInstalling LifecycleState = "installing"
	StateInstalled  LifecycleState = "installed"
	StateActivating LifecycleState = "activating"
	StateActivated  LifecycleState = "activated"
	StateRedundant  LifecycleState = "redundant"
)
