// Package knx implements the address and datapoint codecs used by the KNX Link
// protocol.
//
// # Group Addresses
//
// A KNX group address is a 16-bit value with three interchangeable textual
// notations. All of them map onto the same bit layout:
//
//	bit  15 14 13 12 11 | 10  9  8 |  7  6  5  4  3  2  1  0
//	     main (5 bits)  | middle   |  sub (8 bits)
//	     main (5 bits)  | sub (11 bits)
//	     free-level (16 bits)
//
// Example:
//
//	ga, err := knx.ParseGroupAddress("20/1223")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("% X\n", ga.Bytes()) // A4 C7
//
// The address 0 is reserved in every notation and rejected on parse and
// decode.
//
// # Datapoint Types
//
// A datapoint type is a (type, subtype) pair of 16-bit numbers, written as
// "9.001", "9", "dpt-9" or "dpst-9-1". On the wire it is four bytes,
// big-endian type followed by big-endian subtype.
package knx
