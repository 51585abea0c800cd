// Package dlsg reads and writes DLSG declaration files.
//
// Ownership boundary:
// - whole-file read: header, record stream, section tree
// - whole-file write, footer included
// - top-level section lookup and indexed child append
//
// A file is a 60-byte header followed by records, each a 4-digit decimal
// byte length and a Windows-1251 payload, optionally ended by NUL bytes in
// place of a length.
package dlsg
