package domain

// MunicipalityPolicy parameterizes the status workflow per municipality
// dashboard. The four dashboards run one state machine; only these knobs
// differ between them.
type MunicipalityPolicy struct {
	Municipality string

	// TransitionableFrom lists the status literals a record may still be
	// moved out of. Everything else is terminal for approve/decline.
	TransitionableFrom []string

	// RequireDeclineReason blocks a decline until a non-empty reason is given.
	RequireDeclineReason bool

	// RequireAppointmentToApprove blocks approval until an appointment date
	// has been set on the record.
	RequireAppointmentToApprove bool

	// AllowDeclineAfterApproval lets an approved record still be declined.
	AllowDeclineAfterApproval bool
}

var municipalityPolicies = map[string]MunicipalityPolicy{
	MunicipalityBaler: {
		Municipality:         MunicipalityBaler,
		TransitionableFrom:   []string{StatusPending, StatusPendingLegacy},
		RequireDeclineReason: true,
	},
	MunicipalitySanLuis: {
		Municipality:         MunicipalitySanLuis,
		TransitionableFrom:   []string{StatusPending, StatusPendingLegacy},
		RequireDeclineReason: true,
	},
	MunicipalityMariaAurora: {
		Municipality:              MunicipalityMariaAurora,
		TransitionableFrom:        []string{StatusPending, StatusPendingLegacy},
		AllowDeclineAfterApproval: true,
	},
	MunicipalityDipaculao: {
		Municipality:                MunicipalityDipaculao,
		TransitionableFrom:          []string{StatusPending, StatusPendingLegacy},
		RequireAppointmentToApprove: true,
	},
}

// PolicyFor returns the status policy of one municipality. The boolean is
// false for municipalities outside the fixed enumeration.
func PolicyFor(municipality string) (MunicipalityPolicy, bool) {
	policy, ok := municipalityPolicies[municipality]
	return policy, ok
}

// Municipalities returns the fixed enumeration the inspector dashboards
// are scoped by.
func Municipalities() []string {
	return []string{
		MunicipalityBaler,
		MunicipalitySanLuis,
		MunicipalityMariaAurora,
		MunicipalityDipaculao,
	}
}

// CanTransition reports whether a record in the given status may still be
// approved or declined under this policy.
func (p MunicipalityPolicy) CanTransition(current string) bool {
	for _, status := range p.TransitionableFrom {
		if current == status {
			return true
		}
	}
	return false
}
