// Package ui contains the Bubble Tea program that renders the dojo: the
// current level's instructions, the simulated session, and a status bar in
// the style of tmux.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function.
//   - Key presses are normalised into engine tokens (input.go) and handed to
//     engine.Engine.Handle. The returned Result is turned into commands by
//     applyResult: engine timers are scheduled on the command bus and
//     completions and counters are sent to the progress recorder.
//   - Timer ticks come back as command.TimerMsg and are fed to
//     engine.Engine.Fire, which ignores timers that were cancelled or
//     superseded.
//
// State ownership:
//   - The engine owns the session, the mode and level progress. The UI only
//     reads it when rendering.
//   - Persisted progress lives in internal/state stores, refreshed by the
//     dispatcher whenever the backend recorder reports a new snapshot.
//   - The level picker keeps its own entries, filter and viewport in
//     internal/ui/state.Picker.
//
// Harness runs the model without a terminal and holds timers until the test
// fires them, which keeps level flows deterministic.
package ui
