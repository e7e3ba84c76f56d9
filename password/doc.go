// Package password provides Argon2id credential hashing with PHC-formatted
// output and constant-time verification.
package password
