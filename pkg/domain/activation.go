package domain

// ActivationBrowsingWeb is the handoff type hosts use for web links opened in the app.
const ActivationBrowsingWeb = "browsing-web"

// Activation is the handoff object a host passes when it routes a link to the app.
type Activation struct {
	Type string `json:"type" yaml:"type"`
	URL  string `json:"url" yaml:"url"`
}

// LifecycleEvent is an app-wide signal fanned out to every section.
type LifecycleEvent string

const (
	LifecycleBecameActive     LifecycleEvent = "became-active"
	LifecycleWillResignActive LifecycleEvent = "will-resign-active"
)
