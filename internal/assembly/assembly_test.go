package assembly

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/store"
)

func resolution(kind copro.MajorityType, forS, against, abstain int) copro.Resolution {
	return copro.Resolution{ID: "r", AGID: "ag", Type: kind, SharesFor: forS, SharesAgainst: against, SharesAbstain: abstain}
}

func TestOutcomeDefaults(t *testing.T) {
	e := NewEvaluator(nil)
	cases := []struct {
		name   string
		res    copro.Resolution
		closed bool
		want   copro.VoteStatus
	}{
		{"absolute adopted", resolution(copro.MajorityAbsolute, 700, 150, 50), true, copro.VoteAdopted},
		{"absolute exactly half", resolution(copro.MajorityAbsolute, 450, 400, 50), true, copro.VoteRejected},
		{"simple adopted", resolution(copro.MajoritySimple, 850, 0, 50), true, copro.VoteAdopted},
		{"simple tie", resolution(copro.MajoritySimple, 300, 300, 10), true, copro.VoteRejected},
		{"unanimity adopted", resolution(copro.Unanimity, 500, 0, 0), true, copro.VoteAdopted},
		{"unanimity with against", resolution(copro.Unanimity, 500, 1, 0), true, copro.VoteRejected},
		{"closed without votes", resolution(copro.MajoritySimple, 0, 0, 0), true, copro.VoteRejected},
		{"open with zero tally", resolution(copro.MajorityAbsolute, 700, 150, 0), false, copro.VotePending},
		{"open all tallies", resolution(copro.MajorityAbsolute, 700, 150, 50), false, copro.VoteAdopted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Outcome(tc.res, tc.closed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOutcomeUnknownMajority(t *testing.T) {
	got, err := NewEvaluator(nil).Outcome(resolution("QUALIFIEE", 900, 0, 0), true)
	assert.Equal(t, copro.VotePending, got)
	assert.True(t, errors.Is(err, ErrUnknownMajority))
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules("MAJORITE_ABSOLUE=expressed:2/3, unanimite=expressed:1/1:inclusive")
	require.NoError(t, err)
	assert.Equal(t, Threshold{Base: BaseExpressed, Num: 2, Den: 3}, rules[copro.MajorityAbsolute])
	assert.True(t, rules[copro.Unanimity].Inclusive)

	e := NewEvaluator(rules)
	got, err := e.Outcome(resolution(copro.MajorityAbsolute, 600, 300, 100), true)
	require.NoError(t, err)
	assert.Equal(t, copro.VoteRejected, got)

	rule, ok := e.Rule(copro.MajoritySimple)
	require.True(t, ok)
	assert.Equal(t, "against:1/1", rule.String())

	for _, bad := range []string{"MAJORITE_SIMPLE", "X=expressed:1/2", "MAJORITE_SIMPLE=total:1/2", "MAJORITE_SIMPLE=against:1/0", "MAJORITE_SIMPLE=against:1/2:maybe"} {
		_, err := ParseRules(bad)
		assert.Error(t, err, bad)
	}

	empty, err := ParseRules("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSharePercent(t *testing.T) {
	assert.Equal(t, 4.5, SharePercent(45))
	assert.Equal(t, 10.3, SharePercent(103))
	assert.Equal(t, 0.0, SharePercent(0))
	assert.Equal(t, "4,5 %", strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(FormatSharePercent(45)))
}

func TestSeedAssemblies(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)
	e := NewEvaluator(nil)

	ag1, err := snap.AG("ag1")
	require.NoError(t, err)
	for _, v := range e.Views(ag1) {
		assert.Equal(t, copro.VoteAdopted, v.Outcome, v.ID)
		assert.Equal(t, v.RecordedStatus, v.Outcome, v.ID)
	}

	ag2, err := snap.AG("ag2")
	require.NoError(t, err)
	views := e.Views(ag2)
	require.Len(t, views, 1)
	assert.Equal(t, copro.VotePending, views[0].Outcome)

	q := Quorum(ag1.Participants)
	assert.Equal(t, 50, q.PresentShares)
	assert.Equal(t, 103, q.RepresentedShares)
	assert.Equal(t, 80, q.AbsentShares)
	assert.Equal(t, 15.3, q.Percent)
	assert.Equal(t, 1, q.Counts[copro.Absent])
}

func TestLifecycle(t *testing.T) {
	next, ok := Next(copro.AGPlanned)
	require.True(t, ok)
	assert.Equal(t, copro.AGConvened, next)

	_, ok = Next(copro.AGClosed)
	assert.False(t, ok)

	assert.True(t, CanTransition(copro.AGOngoing, copro.AGCompleted))
	assert.False(t, CanTransition(copro.AGDraft, copro.AGClosed))
	assert.True(t, Closed(copro.AGCompleted))
	assert.False(t, Closed(copro.AGConvened))
}

func TestNextAssembly(t *testing.T) {
	snap, err := store.LoadSeed()
	require.NoError(t, err)

	now := time.Date(2023, 11, 26, 12, 0, 0, 0, time.UTC)
	ag, ok := NextAssembly(snap.Assemblies, now)
	require.True(t, ok)
	assert.Equal(t, "ag2", ag.ID)

	_, ok = NextAssembly(snap.Assemblies, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	sorted := SortByDate(snap.Assemblies)
	assert.Equal(t, "ag2", sorted[0].ID)
	assert.Equal(t, "ag1", snap.Assemblies[0].ID)
}
