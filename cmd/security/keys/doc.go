// Package keys provides the key-pair primitives behind gatekey sessions.
//
// Every session is identified by a random public key that travels inside the
// token, and a private key derived from that public key with a server-held
// secret. The private key never leaves the server; re-deriving it on every
// lookup is what makes tokens unforgeable without the secret.
//
// The package also expands the configured master secret into the two keys the
// subsystem needs: one for token encryption, one for private-key derivation.
// They share a single configured secret but serve different purposes.
package keys
