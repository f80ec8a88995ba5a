// Package protocol implements the text flavour of the OML collection protocol.
//
// A client opens a stream connection, writes a header of "key: value" lines
// terminated by an empty line, then writes one tab-separated,
// newline-terminated tuple per measurement:
//
//	protocol: 1
//	experiment-id: exp42
//	start_time: 1700000000
//	sender-id: node1
//	app-name: sensor1
//	schema: 1 sensor1_power value:double
//	content: text
//
//	0.512345	1	0	3.14
//
// The session ends when the client closes the connection. Everything in this
// package is pure string formatting; it performs no I/O.
package protocol
