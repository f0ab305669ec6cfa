// Package protocol implements the KNX Link frame codec.
//
// Every frame starts with a 3-byte header followed by a body of at most 255
// bytes:
//
//	┌─────────┬────────┬────────┬──────────────────────┐
//	│ version │ action │ length │ body (length bytes)  │
//	└─────────┴────────┴────────┴──────────────────────┘
//
// Request bodies carry a group address, a datapoint type and, for writes,
// the quoted values. Response bodies carry a last-packet flag, a status and
// a UTF-8 message. A response may span several frames; the last one has the
// last-packet flag set.
package protocol
