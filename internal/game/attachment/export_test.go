package attachment

// Resolve exposes the privileged constructor to external tests.
var Resolve = resolve
