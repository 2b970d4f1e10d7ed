package domain

// AgeBand selects which scaler and model serve an applicant.
type AgeBand int

const (
	AgeBandYoung AgeBand = iota
	AgeBandRest
)

// YoungAgeLimit is the oldest age, inclusive, served by the young band.
const YoungAgeLimit = 25

// AgeBandFor resolves the band for an age. Scaling and model selection
// both consume the result.
func AgeBandFor(age float64) AgeBand {
	if age <= YoungAgeLimit {
		return AgeBandYoung
	}
	return AgeBandRest
}

func (b AgeBand) String() string {
	switch b {
	case AgeBandYoung:
		return "young"
	case AgeBandRest:
		return "rest"
	default:
		return "unknown"
	}
}

// MarshalText renders the band as its name in JSON payloads.
func (b AgeBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
