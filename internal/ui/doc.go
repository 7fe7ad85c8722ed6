// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI works on the same record file as the CLI:
//  1. [ListView] : Browse visible tasks and change their status
//  2. [AddView] : Type the content of a new task
//  3. [ConfirmView] : Confirm deletion of the selected task
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every operation runs synchronously inside a [tea.Cmd] and is followed by a reload from the store, so the list never shows cached state.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
