package codec

import "github.com/mkfw/hexcraft/internal/logger"

// Log records interoperability notes raised while reading or writing a
// format, such as the Intel-HEX writer's CRLF requirement. Callers that
// want to inspect these notes can read Log directly; nothing in this
// package depends on them being consumed.
var Log = logger.NewLogger(64)
