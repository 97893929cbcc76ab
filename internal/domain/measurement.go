package domain

import (
	"errors"
	"fmt"
	"math"
)

// Mode identifies how an activity is measured. It is fixed when the activity is created.
type Mode string

const (
	ModeStrength     Mode = "fuerza"
	ModeDuration     Mode = "duracion"
	ModeDistanceTime Mode = "distancia_tiempo"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModeStrength, ModeDuration, ModeDistanceTime}

// ParseMode validates a raw mode string.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeStrength, ModeDuration, ModeDistanceTime:
		return Mode(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
}

// Measurement is the mode-specific payload of an activity. The only implementations are
// Strength, Duration and DistanceTime.
type Measurement interface {
	Mode() Mode
	measurement()
}

// Strength holds the detail row of a strength activity.
type Strength struct {
	Series      int
	Repetitions int
	WeightKg    float64
}

// Duration holds the detail row of a duration activity.
type Duration struct {
	Seconds int
}

// DistanceTime holds the detail row of a distance+time activity. PaceSecondsPerKm is stored
// when the row is written and is authoritative afterwards.
type DistanceTime struct {
	DistanceKm       float64
	TimeSeconds      int
	PaceSecondsPerKm float64
}

func (Strength) Mode() Mode     { return ModeStrength }
func (Duration) Mode() Mode     { return ModeDuration }
func (DistanceTime) Mode() Mode { return ModeDistanceTime }

func (Strength) measurement()     {}
func (Duration) measurement()     {}
func (DistanceTime) measurement() {}

// NewDistanceTime builds a distance+time measurement and derives its pace.
func NewDistanceTime(distanceKm float64, timeSeconds int) DistanceTime {
	m := DistanceTime{DistanceKm: distanceKm, TimeSeconds: timeSeconds}
	if distanceKm > 0 {
		m.PaceSecondsPerKm = float64(timeSeconds) / distanceKm
	}
	return m
}

// Validate checks the measurement values accepted on write.
func Validate(m Measurement) error {
	switch v := m.(type) {
	case Strength:
		if v.Series <= 0 || v.Repetitions <= 0 {
			return fmt.Errorf("%w: series and repetitions must be > 0", ErrInvalidMeasurement)
		}
		if v.WeightKg <= 0 || math.IsNaN(v.WeightKg) || math.IsInf(v.WeightKg, 0) {
			return fmt.Errorf("%w: weight must be > 0", ErrInvalidMeasurement)
		}
	case Duration:
		if v.Seconds < 0 {
			return fmt.Errorf("%w: duration must be >= 0", ErrInvalidMeasurement)
		}
	case DistanceTime:
		if v.DistanceKm <= 0 || math.IsNaN(v.DistanceKm) || math.IsInf(v.DistanceKm, 0) {
			return fmt.Errorf("%w: distance must be > 0", ErrInvalidMeasurement)
		}
		if v.TimeSeconds <= 0 {
			return fmt.Errorf("%w: time must be > 0", ErrInvalidMeasurement)
		}
	case nil:
		return errors.Join(ErrInvalidMeasurement, errors.New("missing measurement"))
	default:
		return fmt.Errorf("%w: unsupported measurement %T", ErrInvalidMeasurement, m)
	}
	return nil
}

// StrengthActivityMinutes is the flat estimate used for strength work, which records no duration.
const StrengthActivityMinutes = 45

// ActiveMinutes returns the active time credited to an activity. Duration and distance+time
// activities without a detail row count as zero.
func ActiveMinutes(a Activity) int {
	switch a.Mode {
	case ModeStrength:
		return StrengthActivityMinutes
	case ModeDuration:
		if d, ok := a.Detail.(Duration); ok {
			return d.Seconds / 60
		}
	case ModeDistanceTime:
		if d, ok := a.Detail.(DistanceTime); ok {
			return d.TimeSeconds / 60
		}
	}
	return 0
}
