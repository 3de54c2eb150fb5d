// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [Display]: Receives formatted ticks and the finished signal
//   - [Clock]: Time source and timers, replaceable in tests
//   - [SoundPlayer]: Loops the notification sound until stopped
//   - [Beeper]: Fallback audible alert
//   - [Surface]: Background whose color the flash sequence changes
//   - [Acknowledger]: Presents the completion acknowledgment
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with beep,
// beeep, readline and zerolog.
package ports
