// Package config handles the novamix configuration file.
//
// Configuration lives at the platform config directory
// (~/.config/novamix/config.yaml on Linux) and is plain YAML with a
// version field for forward compatibility:
//
//	version: 1
//	model: nova-5x
//	read_timeout_ms: 1000
//	chatmix:
//	  enable_controls: true
//	  original_sink: ""
//	  game_sink: NovaGame
//	  chat_sink: NovaChat
//	sonar_icon: true
//	server:
//	  enabled: true
//	  listen: 127.0.0.1:8732
//
// A missing file at the default location is not an error: the daemon runs
// with built-in defaults. Flags override whatever the file provided.
package config
