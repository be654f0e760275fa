package renderer

import "errors"

var (
	ErrInvalidDimensions = errors.New("renderer: image dimensions must be positive")
	ErrInvalidSamples    = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidBounces    = errors.New("renderer: max bounces must not be negative")
	ErrInvalidFocal      = errors.New("renderer: focal length must be positive")
	ErrInvalidTileSize   = errors.New("renderer: tile size must be positive")
	ErrSceneNotDefined   = errors.New("renderer: no scene defined")
	ErrInterrupted       = errors.New("renderer: interrupted while rendering")
)
