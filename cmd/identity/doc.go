// Package identity defines the user-directory boundary gatekey depends on.
//
// User management (registration, credentials, roles) lives in the surrounding
// system; sessions only need two things from it: a stable identifier for any
// principal handed to session creation, and a way to resolve a stored user id
// back to its record.
package identity
