// Package session implements bearer-token session authentication with a
// dual-key scheme.
//
// Every session carries a random public key embedded in the token and a
// private key derived from it with a server-held secret. Tokens are opaque
// encrypted envelopes (PASETO v4.local) holding the client id, user id,
// public key and optional expiry. Validation is two-layered: the token must
// decrypt and be unexpired, and the decoded fields plus the re-derived
// private key must exactly match a stored session row. Revocation is row
// deletion; expired rows are rejected lazily on presentation rather than
// swept by a background job.
package session
