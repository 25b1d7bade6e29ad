// Package ui contains the Bubble Tea program that hosts the animated nav bar.
// The Model type focuses on message orchestration while the nav package owns
// selection, layout and the particle burst.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses go to the route prompt while it is open, then to the app
//     bindings (quit, history, prompt, help) and finally to the nav bar.
//   - Window size changes resize the layout container; the nav bar observes
//     the container and repositions its highlight on its own.
//
// Router interactions:
//   - A route.Router streams location changes. Update waits for those events
//     and forwards each one to the nav bar as a LocationMsg, which syncs the
//     highlight without a particle burst.
//   - Explicit selections in the nav bar call Router.Navigate through a
//     tea.Cmd. History moves and prompt submissions run through the command
//     bus in internal/ui/command.
package ui
