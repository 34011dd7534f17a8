package topic

import (
	"errors"
	"fmt"
)

var (
	ErrExceedsMaxLength              = errors.New("topic: length out of range")
	ErrExceedsMaxLayerCount          = errors.New("topic: too many layers")
	ErrLeadingSlash                  = errors.New("topic: must not begin with a slash")
	ErrTrailingSlash                 = errors.New("topic: must not end with a slash")
	ErrEmptyLayer                    = errors.New("topic: must not contain consecutive slashes (empty layer)")
	ErrWildcardInTopic               = errors.New("topic: wildcard characters are not allowed in a publish topic")
	ErrMultiLayerWildcardNotTerminal = errors.New("topic: the multi-layer wildcard '#' must appear only in the last layer")
)

// LengthError reports a topic that is empty or longer than MaxLength.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("topic: length %d is outside 1..%d bytes", e.Length, MaxLength)
}

func (e *LengthError) Is(target error) bool {
	return target == ErrExceedsMaxLength
}

// LayerCountError reports a topic with more than MaxLayers layers.
// Count is the layer count detected when the scan stopped.
type LayerCountError struct {
	Count int
}

func (e *LayerCountError) Error() string {
	return fmt.Sprintf("topic: layer count %d exceeds the maximum of %d", e.Count, MaxLayers)
}

func (e *LayerCountError) Is(target error) bool {
	return target == ErrExceedsMaxLayerCount
}
