// Package collaborator provides Invoker implementations backing the named
// collaborator services handlers depend on. The in-memory invoker is the
// default: it keeps everything process-local and deterministic, records every
// call for inspection, and ships canned service implementations suitable for
// development and tests. Subpackages add LLM-backed invokers for the
// analytical services.
package collaborator
