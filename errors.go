package scrollview

import "errors"

// Errors returned by viewport constructors, SetZoom, and SetDisplay wrap
// one of these sentinels with context; check them with [errors.Is].
// Per-frame operations (Scroll, Center, DrawSprites) never fail:
// out-of-range positions are resolved by clamping.
var (
	// ErrInvalidBounds reports that a display surface cannot fit inside
	// the scrolling area, either at construction or after replacing the
	// display with a larger one on a non-repeating viewport. A viewport
	// whose constructor returned this error must not be used.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrInvalidArgument reports a malformed argument: a non-positive or
	// non-finite zoom factor, or a tile grid that is empty, ragged, or
	// has tiles of unequal sizes.
	ErrInvalidArgument = errors.New("invalid argument")
)
