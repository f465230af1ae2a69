// Package driving defines the interfaces through which the outside
// world drives the core (primary ports). The CLI adapter calls these;
// core services implement them.
package driving
