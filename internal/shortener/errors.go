package shortener

import "errors"

// ErrGenerationExhausted indicates the retry budget for unique-code
// generation was exceeded. With the default 6-character base62 space
// (62^6 candidates) this signals a broken uniqueness oracle rather than
// genuine saturation, so callers surface it as a server-side failure.
var ErrGenerationExhausted = errors.New("short code generation exhausted")
