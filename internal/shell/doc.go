// Package shell implements knxlink's interactive prompt.
//
// Each read or write line is executed on its own connection, like the
// non-interactive commands:
//
//	knx> read 1/2/3 9.001
//	[SUCCESS] 21.5
//	knx> write 1/2/3 1.001 on
//	[SUCCESS] ok
package shell
