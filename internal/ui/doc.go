// Package ui renders the control CLI's terminal output: the one-shot
// status snapshot and the live watch dashboard.
//
// The dashboard is a Bubble Tea program fed by the daemon's WebSocket
// event stream. It keeps a local copy of the daemon's state snapshot and
// folds incoming events into it, so a freshly connected watcher shows
// the current mix immediately rather than waiting for the dial to move.
package ui
