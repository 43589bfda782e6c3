package session

import (
	"fmt"
	"math"

	"RoundSentinel/internal/model"
)

const (
	MinWindow = 10
	MaxWindow = 100

	DefaultWindow        = 20
	DefaultPinkThreshold = 10.0
)

// DefaultSettings returns the settings a fresh dashboard starts with.
func DefaultSettings() model.Settings {
	return model.Settings{
		WindowSize:    DefaultWindow,
		PinkThreshold: DefaultPinkThreshold,
		StrictMode:    true,
	}
}

// ValidateSettings checks the window range and pink threshold.
func ValidateSettings(s model.Settings) error {
	if s.WindowSize < MinWindow || s.WindowSize > MaxWindow {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidWindow, s.WindowSize, MinWindow, MaxWindow)
	}
	if !validPositive(s.PinkThreshold) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, s.PinkThreshold)
	}
	return nil
}

// ValidateMultiplier rejects non-finite and non-positive multipliers.
func ValidateMultiplier(m float64) error {
	if !validPositive(m) {
		return fmt.Errorf("%w: %v", ErrInvalidMultiplier, m)
	}
	return nil
}

func validPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
