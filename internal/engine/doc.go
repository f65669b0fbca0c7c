// Package engine implements the streaming cryptographic transform used by
// the pipeline. Encryption derives a 256-bit AES key and a MAC key from the
// password with PBKDF2-SHA256, encrypts the body with AES-CTR in fixed-size
// chunks, and appends an HMAC-SHA256 trailer over the header and ciphertext.
// A transform in progress can be cancelled cooperatively from another
// goroutine via Cancel.
package engine
