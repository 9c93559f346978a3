// Package io provides the file formats around the UVM machine: the binary
// program image (Rom) and memory dumps (Dump) in JSON, TOML or CBOR.
package io
