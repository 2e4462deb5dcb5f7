// Package session keeps the signed-in user's tokens and profile between
// calls and between CLI runs.
//
// Store is the contract used by the HTTP client and the auth service.
// MemoryStore lives only as long as the process; SQLiteStore persists to a
// local SQLite file and, when given a passphrase, seals every value with
// AES-GCM under an Argon2id key whose salt is kept in the same database.
package session
