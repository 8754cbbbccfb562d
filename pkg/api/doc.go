// Package api defines the wire types the tool-result adapter exchanges
// with a model runtime: canonical output parts (text or inline binary
// data), tool declarations produced by discovery, and call identifiers.
//
// The types here are plain serialization structs with no behavior beyond
// JSON shaping. Everything that interprets tool server responses lives in
// pkg/tools/mcp.
package api
