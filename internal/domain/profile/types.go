package profile

// RH es el grupo sanguíneo y factor.
type RH string

const (
	RHOPositive  RH = "O+"
	RHONegative  RH = "O-"
	RHAPositive  RH = "A+"
	RHANegative  RH = "A-"
	RHBPositive  RH = "B+"
	RHBNegative  RH = "B-"
	RHABPositive RH = "AB+"
	RHABNegative RH = "AB-"
)

func (r RH) Valid() bool {
	switch r {
	case RHOPositive, RHONegative, RHAPositive, RHANegative,
		RHBPositive, RHBNegative, RHABPositive, RHABNegative:
		return true
	}
	return false
}

// Gender
// @Enum male, female, other
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
