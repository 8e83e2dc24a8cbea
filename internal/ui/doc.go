// Package ui contains the Bubble Tea program and the component tree of the
// file browser.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. A typed handler
//     registry translates key, mouse and resize messages into commands and
//     queues them on the command Bus, next to the snapshots sent by task
//     workers and the directory watcher.
//   - A frame tick drains the Bus through the dispatcher, which broadcasts
//     every command through the component tree until the derived commands
//     settle. A Quit ends the program; an unhandled semantic command is a
//     fatal error reported by Model.Err.
//   - Bubble Tea then calls View, which lays out the components and records
//     their areas for mouse routing.
//
// Component ownership (every semantic command has an owner):
//   - App, the root: Resize, the input mode, quitting.
//   - FileSystem: navigation, opening, renaming, and the task engine.
//   - Header: the selected entry. Table: the listing and its filter.
//   - Notices: errors and task progress. Clipboard: copy, cut and paste.
//   - Prompt: the filter and rename input; it alone receives keys while open.
package ui
