// Package topic implements the topic and topic filter types of the Ocypode
// protocol.
//
// A Topic names the destination of a published message and may not contain
// wildcards. A TopicFilter is the pattern carried by a subscription and may
// use the single-layer wildcard '+' and, in the last layer only, the
// multi-layer wildcard '#'.
//
// Both are slash-separated byte strings of 1 to 256 bytes with at most 8
// layers. Leading, trailing and consecutive separators are rejected. Layer
// boundaries are computed once at construction so Layer(i) does not rescan.
//
// On the wire both are a 2-byte big-endian length followed by the raw bytes.
// Encoding replays the stored bytes unchanged.
//
// A filter exposes its WildcardKind so the routing layer can choose between
// exact-match lookup and trie traversal:
//
//	sensor/data     None
//	sensor/+/data   SingleLayer
//	sensor/data/#   MultiLayer
//	sensor/+/#      Both
package topic
