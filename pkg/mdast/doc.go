// Package mdast defines the token stream shared by the block parser, the
// inline stage, renderers and reporters.
//
// The stream is flat: container blocks are expressed as open/close token
// pairs and only inline tokens carry Children.
package mdast
