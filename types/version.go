package types

// Version is the canonical project version.
// The CLI and the registry document writer share this version; bump it in
// lockstep with any registry format change.
const Version = "0.2.0"
