package beam

import "errors"

var (
	// ErrInvalidParams indicates geometry or material values that no model accepts.
	ErrInvalidParams = errors.New("beam: invalid parameters")

	// ErrUnknownModel indicates a model selector outside the closed set.
	ErrUnknownModel = errors.New("beam: unknown model")

	// ErrUnknownLoadCase indicates a PRB-1R load case selector outside the closed set.
	ErrUnknownLoadCase = errors.New("beam: unknown load case")
)
