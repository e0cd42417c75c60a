// Package core provides the foundational domain types and interfaces used by
// QueryFlow. It defines the core abstractions for:
//
//   - Queries (validated, immutable inbound requests)
//   - Intents (closed-set classification with static attributes)
//   - Confidence levels (discretized certainty buckets with execution policy)
//   - Interpretations (structured decision artifacts produced from queries)
//   - Execution results (terminal outcomes with a strict status state machine)
//   - Invoker (the uniform collaborator service call contract)
//   - Sessions (conversational containers with query history)
//
// The package intentionally keeps implementation concerns (classification
// rules, handler dispatch, concrete collaborator clients) out of scope,
// exposing small interfaces to enable custom backends and extensions. All
// exported identifiers include concise documentation to aid discoverability
// and external consumption.
package core
