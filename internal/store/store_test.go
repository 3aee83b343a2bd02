package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterhouse/syndic/internal/copro"
)

func TestLoadSeedIndexes(t *testing.T) {
	snap, err := LoadSeed()
	require.NoError(t, err)

	assert.Len(t, snap.Users, 4)
	assert.Len(t, snap.Lots, 5)
	assert.Len(t, snap.Records, 8)
	assert.Len(t, snap.Assemblies, 2)
	assert.NotEmpty(t, snap.Version)

	u, err := snap.User("u2")
	require.NoError(t, err)
	assert.Equal(t, "M. Karim Alami", u.Name)

	assert.Equal(t, []string{"l1", "l4"}, snap.OwnedLotIDs("u2"))
	assert.Equal(t, []string{"b_A", "b_P"}, snap.UserBuildingIDs("u2"))
	assert.Equal(t, []string{"b_A"}, snap.UserBuildingIDs("u3"))
	assert.Empty(t, snap.OwnedLotIDs("u1"))

	assert.Equal(t, 233, snap.ShareTotal())
	assert.Equal(t, 50, snap.ShareTotalFor("u2"))
}

func TestSnapshotMissingReferences(t *testing.T) {
	snap, err := LoadSeed()
	require.NoError(t, err)

	_, err = snap.Ticket("t404")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, copro.UnknownName, snap.UserName("ghost"))
	assert.Equal(t, copro.UnknownName, snap.ProviderName(""))
	assert.Equal(t, "Otis Maroc", snap.ProviderName("p3"))
}

func TestOwnedLotIDsReturnsCopy(t *testing.T) {
	snap, err := LoadSeed()
	require.NoError(t, err)

	ids := snap.OwnedLotIDs("u2")
	ids[0] = "changed"
	assert.Equal(t, "l1", snap.OwnedLotIDs("u2")[0])
}

func TestDecodeRejectsMalformedDate(t *testing.T) {
	doc := `{"copropriete":{"id":"c","name":"x"},"finance_records":[{"id":"f1","date":"01/10/2023","type":"DEBIT","status":"Payé","amount":1}]}`
	_, err := DecodeBytes([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json inválido")
}

func TestDecodeReportsValidationProblems(t *testing.T) {
	doc := `{
		"copropriete":{"id":"c","name":"x"},
		"users":[{"id":"u1","name":"A","role":"ADMIN"}],
		"buildings":[{"id":"b1","copropriete_id":"c","name":"B"}],
		"lots":[{"id":"l1","copropriete_id":"c","building_id":"b9","owner_id":"u1","numero":"1","type":"Appartement","tantiemes_generaux":-5}],
		"documents":[{"id":"d1","copropriete_id":"c","type":"Inconnu","title":"t"}],
		"assemblies":[{"id":"ag1","copropriete_id":"c","title":"AG","type":"Ordinaire","status":"Planifiée",
			"resolutions":[{"id":"r1","ag_id":"ag2","title":"R","type":"MAJORITE_SIMPLE"}]}]
	}`
	_, err := DecodeBytes([]byte(doc))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Problems))
	for _, p := range verr.Problems {
		fields = append(fields, p.Field)
	}
	joined := strings.Join(fields, ",")
	assert.Contains(t, joined, "users[0].role")
	assert.Contains(t, joined, "lots[0].tantiemes_generaux")
	assert.NotContains(t, joined, "lots[0].building_id")
	assert.Contains(t, joined, "documents[0].type")
	assert.Contains(t, joined, "assemblies[0].resolutions[0].ag_id")
}

func TestDecodeEmptyCollections(t *testing.T) {
	ds, err := DecodeBytes([]byte(`{"copropriete":{"id":"c","name":"x"}}`))
	require.NoError(t, err)
	assert.NotNil(t, ds.Tickets)
	assert.Empty(t, ds.Tickets)
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Fetch(ctx context.Context) (*Dataset, error) {
	return nil, errors.New("indisponível")
}

func TestStoreKeepsPreviousSnapshotOnFailure(t *testing.T) {
	s := New(SeedSource{})
	first, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Same(t, first, s.Current())

	s.source = failingSource{}
	_, err = s.Load(context.Background())
	require.Error(t, err)
	assert.Same(t, first, s.Current())
}

type docSource struct {
	doc []byte
}

func (d *docSource) Name() string { return "doc" }

func (d *docSource) Fetch(ctx context.Context) (*Dataset, error) {
	return DecodeBytes(d.doc)
}

func TestStoreReloadKeepsUnchangedSnapshot(t *testing.T) {
	s := New(SeedSource{})
	first, err := s.Load(context.Background())
	require.NoError(t, err)
	second, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
	assert.Same(t, first, s.Current())
}

func TestStoreReloadSwapsChangedSnapshot(t *testing.T) {
	src := &docSource{doc: []byte(`{"copropriete":{"id":"c","name":"x"}}`)}
	s := New(src)
	first, err := s.Load(context.Background())
	require.NoError(t, err)

	src.doc = []byte(`{"copropriete":{"id":"c","name":"y"}}`)
	second, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.Version, second.Version)
	assert.Same(t, second, s.Current())
}

func TestDanglingReferencesResolveToUnknown(t *testing.T) {
	doc := `{
		"copropriete":{"id":"c","name":"x"},
		"users":[{"id":"u1","name":"A","role":"SYNDIC"}],
		"buildings":[{"id":"b1","copropriete_id":"c","name":"B"}],
		"lots":[{"id":"l1","copropriete_id":"c","building_id":"b1","owner_id":"u_gone","numero":"1","type":"Appartement","tantiemes_generaux":10}],
		"finance_records":[{"id":"f1","date":"2023-10-01T00:00:00+01:00","type":"DEBIT","status":"Payé","amount":1,"related_lot_id":"l_gone"}]
	}`
	s := New(&docSource{doc: []byte(doc)})
	snap, err := s.Load(context.Background())
	require.NoError(t, err)

	lot, err := snap.Lot("l1")
	require.NoError(t, err)
	assert.Equal(t, copro.UnknownName, snap.UserName(lot.OwnerID))
	assert.Len(t, snap.Records, 1)

	fields := []string{}
	for _, p := range snap.MissingReferences() {
		fields = append(fields, p.Field)
	}
	assert.Equal(t, []string{"lots[0].owner_id", "finance_records[0].related_lot_id"}, fields)
}

func TestDecodeRequiresDates(t *testing.T) {
	doc := `{"copropriete":{"id":"c","name":"x"},"finance_records":[{"id":"f1","type":"DEBIT","status":"Payé","amount":1}]}`
	_, err := DecodeBytes([]byte(doc))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Problems, 1)
	assert.Equal(t, "finance_records[0].date", verr.Problems[0].Field)
	assert.Equal(t, "required", verr.Problems[0].Rule)
}

func TestDecodeAcceptsDateOnlyValues(t *testing.T) {
	doc := `{"copropriete":{"id":"c","name":"x"},
		"finance_records":[{"id":"f1","date":"2023-11-01","type":"DEBIT","status":"Payé","amount":1}],
		"journal":[{"id":"j1","date":"2023-11-02T10:30:00","account_code":"5141","debit":1}]}`
	ds, err := DecodeBytes([]byte(doc))
	require.NoError(t, err)

	rec := ds.Records[0].Date
	assert.Equal(t, copro.Location(), rec.Location())
	assert.True(t, rec.Equal(time.Date(2023, 11, 1, 0, 0, 0, 0, copro.Location())))
	assert.Equal(t, 10, ds.Journal[0].Date.Hour())
}

func TestRefresherRunOnceLogsFailure(t *testing.T) {
	s := New(SeedSource{})
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	before := s.Current()

	s.source = failingSource{}
	r := NewRefresher(s, "@every 1h")
	r.RunOnce(context.Background())
	assert.Same(t, before, s.Current())
}

func TestRefresherRejectsBadSchedule(t *testing.T) {
	r := NewRefresher(New(SeedSource{}), "not a schedule")
	assert.Error(t, r.Start(context.Background()))
	r.Stop()
}

type recordingExecer struct {
	queries []string
	args    [][]any
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.queries = append(r.queries, sql)
	r.args = append(r.args, args)
	return pgconn.CommandTag{}, nil
}

func TestImportValidatesBeforeInsert(t *testing.T) {
	ex := &recordingExecer{}

	_, err := Import(context.Background(), ex, "teste", []byte(`{"lots":[{"id":"l1"}]}`))
	require.Error(t, err)
	assert.Empty(t, ex.queries)

	id, err := Import(context.Background(), ex, "seed", SeedDocument())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, ex.queries, 1)
	assert.Contains(t, ex.queries[0], "INSERT INTO snapshots")
	assert.Equal(t, id, ex.args[0][0])
	assert.Equal(t, "seed", ex.args[0][1])
}

func TestEnsureSchemaRunsDDL(t *testing.T) {
	ex := &recordingExecer{}
	require.NoError(t, EnsureSchema(context.Background(), ex))
	require.Len(t, ex.queries, 1)
	assert.Contains(t, ex.queries[0], "CREATE TABLE IF NOT EXISTS snapshots")
}
