// Package entities provides the core domain entities of the butane plugin.
// An InvocationRequest describes one transpiler run; a Result is what the
// orchestration engine gets back from it.
package entities
