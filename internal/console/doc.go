// Package console renders knxlink's user-facing output.
//
// Every success packet prints as "[SUCCESS] <message>" and a failure as
// "[ERROR] (<Status>): <message>". Diagnostic logging is separate and goes
// through the logging package.
package console
