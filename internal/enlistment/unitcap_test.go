package enlistment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curriculumPolicy(t *testing.T) CapPolicy {
	t.Helper()
	ceilings, err := ParseCeilings("1:1=21,2:1=22,2:2=24,2:3=12,2:4=6")
	require.NoError(t, err)
	return NewCapPolicy(18, 24, ceilings)
}

func TestCapPolicyResolve(t *testing.T) {
	policy := curriculumPolicy(t)

	assert.Equal(t, 0, policy.Resolve(1, FirstSemester, StatusOnLeave))
	assert.Equal(t, 21, policy.Resolve(1, FirstSemester, StatusRegular))
	assert.Equal(t, 18, policy.Resolve(1, FirstSemester, StatusIrregular))
	assert.Equal(t, 12, policy.Resolve(3, SecondSemester, StatusRegular))
	assert.Equal(t, 12, policy.Resolve(3, SecondSemester, StatusIrregular))
	assert.Equal(t, 6, policy.Resolve(4, SecondSemester, StatusIrregular))
}

func TestCapPolicyIrregularUsesInstitutionalCap(t *testing.T) {
	policy := curriculumPolicy(t)
	assert.Equal(t, 24, policy.Ceiling(SecondSemester, 2))
	assert.Equal(t, 18, policy.Resolve(2, SecondSemester, StatusIrregular))
}

func TestCapPolicyFallsBackToDefaultCeiling(t *testing.T) {
	policy := curriculumPolicy(t)
	assert.Equal(t, 24, policy.Resolve(2, FirstSemester, StatusRegular))
	assert.Equal(t, 24, policy.Resolve(5, SecondSemester, StatusRegular))

	var zero CapPolicy
	assert.Equal(t, 24, zero.Resolve(1, FirstSemester, StatusRegular))
	assert.Equal(t, 18, zero.Resolve(1, FirstSemester, StatusIrregular))
}

func TestParseRegistrationStatus(t *testing.T) {
	cases := map[string]RegistrationStatus{
		"Regular":   StatusRegular,
		"IRREGULAR": StatusIrregular,
		"On Leave":  StatusOnLeave,
		"ON_LEAVE":  StatusOnLeave,
	}
	for raw, expected := range cases {
		status, err := ParseRegistrationStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, expected, status)
	}
	_, err := ParseRegistrationStatus("graduated")
	require.Error(t, err)
}

func TestParseCeilingsRoundTrip(t *testing.T) {
	raw := "1:1=21,2:1=22,2:4=6"
	ceilings, err := ParseCeilings(raw)
	require.NoError(t, err)
	assert.Equal(t, 21, ceilings[TermLevel{Semester: FirstSemester, YearLevel: 1}])
	assert.Equal(t, raw, FormatCeilings(ceilings))

	for _, bad := range []string{"1:1", "3:1=20", "1:x=20", "1:1=-2"} {
		_, err := ParseCeilings(bad)
		require.Error(t, err, bad)
	}
}
