package intake

// RotationPolicy is recorded on the lot at intake time and drives candidate
// ordering when units are retrieved later.
type RotationPolicy string

const (
	RotationFIFO   RotationPolicy = "FIFO"
	RotationLIFO   RotationPolicy = "LIFO"
	RotationFEFO   RotationPolicy = "FEFO"
	RotationRandom RotationPolicy = "RANDOM"
)

// String returns the string representation
func (p RotationPolicy) String() string {
	return string(p)
}

// IsValid checks if the rotation policy is valid
func (p RotationPolicy) IsValid() bool {
	switch p {
	case RotationFIFO, RotationLIFO, RotationFEFO, RotationRandom:
		return true
	}
	return false
}
