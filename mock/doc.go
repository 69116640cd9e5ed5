// Package mock captures the shape of an arbitrary runtime component
// into a portable, serializable metadata tree and reconstructs from it
// a structurally equivalent replica whose callables are instrumented
// stand-ins.
//
// This package contains:
//   - Tagged value representation with delegated-behavior chains
//   - Type classification and member enumeration
//   - Identity-sharing metadata extraction with cycle support
//   - Two-pass mock generation with deferred back-reference rewiring
//   - The instrumented-callable runtime (call ledger and override layers)
//   - CBOR wire codec for metadata trees
package mock
