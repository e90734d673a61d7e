/*
Package router implements the section router: a per-area state machine that
gates, sequences and animates screen transitions.

Each app area (menu, authorization, settings...) owns one Router with its own
screen enumeration, presentability table and screen builder. Routers share
nothing but the dispatch.Executor they are given, so every UI mutation lands
on the single UI-owning loop.

# Transition flow

	request -> surface check -> Table.Allows(current, request) -> executor -> UI mutation -> state update -> Output

Every failure (missing window, denied request, builder returning nil,
snapshot failure) is logged and dropped. A Router never panics and never
changes state on a failed transition.

# Shifts

Cross-fades add the incoming root as a layer and animate its opacity.
Snapshot slides capture static snapshots of the outgoing and incoming
surfaces before touching either, animate the snapshots, and only then swap
the real root. In both cases the state flips as soon as the shift starts,
not when it finishes; there is no in-progress guard, so a second request
issued mid-animation is gated against the new state.
*/
package router
