/*
Package ports defines the driven ports (interfaces) of the Waypoint router.

These interfaces decouple resolution and routing from concrete storage
backends, so the pending activity slot can live in process memory or in Redis.

# Key Interfaces

  - PendingSlot: Single-slot buffer holding at most one unconsumed navigation intent.
*/
package ports
