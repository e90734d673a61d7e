/*
Package domain contains the core vocabulary of the Waypoint navigation subsystem.

It defines what flows between the resolver, the section routers and the host,
and nothing else. The package is kept pure and free of external dependencies
like I/O, persistence or a view hierarchy.

# Key Entities

  - Intent: An immutable, typed destination produced by resolving an external activation.
  - Activation: The handoff object a host passes for universal links.
  - RequestKind, CrossFade, SlideSnapshot, Notification: The transition vocabulary shared by every section router.
  - LifecycleHooks: Optional callbacks for auditing resolutions and transitions.
*/
package domain
