// Package auth implements request signing for the secured deployment mode.
//
// When credentials are configured, every outgoing request header gains three
// extension fields (Signature, AccessKey, OnsChannel). The signature is an
// HMAC-SHA1 over a canonical concatenation of the access key, the channel
// identifier, all extension field values in insertion order and the body
// bytes, base64 encoded.
//
// The secured/unsecured choice is made once at construction: NewSigner returns
// a nil signer for nil credentials, and a nil signer is a no-op. This replaces
// a per-call branch on credential presence with an explicit variant selection.
package auth
