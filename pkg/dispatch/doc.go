/*
Package dispatch is the transition executor every UI-mutating call funnels through.

Exactly one logical UI-owning loop exists per app. Work submitted from the
loop itself runs inline; work submitted from any other goroutine is queued
onto the loop and runs there asynchronously, in submission order. Because the
loop marks the context it hands to its work, nested submissions never
deadlock.

Animations report completion exactly once. A zero duration applies the final
frame and completes synchronously inside the Animate call.
*/
package dispatch
