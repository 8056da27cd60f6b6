// Package ctlclient is the CLI-side client for the daemon's control
// server: a one-shot HTTP status fetch and a WebSocket stream carrying
// events down and commands up.
package ctlclient
