package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyForKnownMunicipalities(t *testing.T) {
	for _, municipality := range Municipalities() {
		policy, ok := PolicyFor(municipality)
		require.True(t, ok, municipality)
		assert.Equal(t, municipality, policy.Municipality)
	}
}

func TestPolicyForUnknownMunicipality(t *testing.T) {
	_, ok := PolicyFor("Quezon City")
	assert.False(t, ok)
}

func TestCanTransitionTreatsBothPendingLiteralsAsOpen(t *testing.T) {
	policy, _ := PolicyFor(MunicipalityBaler)

	assert.True(t, policy.CanTransition(StatusPending))
	assert.True(t, policy.CanTransition(StatusPendingLegacy))
	assert.False(t, policy.CanTransition(StatusApproved))
	assert.False(t, policy.CanTransition(StatusApprovedAttachment))
	assert.False(t, policy.CanTransition(StatusDeclined))
}

func TestCanonicalPoliciesRequireDeclineReason(t *testing.T) {
	for _, municipality := range []string{MunicipalityBaler, MunicipalitySanLuis} {
		policy, _ := PolicyFor(municipality)
		assert.True(t, policy.RequireDeclineReason, municipality)
	}
	for _, municipality := range []string{MunicipalityMariaAurora, MunicipalityDipaculao} {
		policy, _ := PolicyFor(municipality)
		assert.False(t, policy.RequireDeclineReason, municipality)
	}
}
