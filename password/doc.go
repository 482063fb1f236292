// Package password provides memory-hard Argon2id hashing for stored
// credentials.
package password
