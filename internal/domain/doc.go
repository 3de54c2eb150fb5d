// Package domain contains the core domain entities and value objects for officetimer.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (audio, terminal, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Seconds]: A countdown duration in whole seconds
//   - [CountdownState]: The state of the countdown engine (Idle, Running, Finished)
//   - [FlashCycle]: The bounded step counter of a flash sequence
//   - [ValidationError]: A rejected user input, with its [ValidationKind]
//   - [ResourceError]: A missing or failing audio resource
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
