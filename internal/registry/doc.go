// Package registry provides the task container: a name-keyed registry of
// lazily-realized task providers.
//
// It is intentionally split into:
//   - Container: registration and lookup by name, with eager existence checks
//   - Provider: a pending-or-realized handle that defers the task factory and
//     all configuration actions until the task is first needed
//   - TypedProvider: the same handle with a declared task type, checked
//     against the runtime type at realization
//   - Scope: a forwarding view for blocks of name-keyed configuration code
//
// The container holds no dependency information and performs no scheduling;
// realization order is entirely up to the caller.
package registry
