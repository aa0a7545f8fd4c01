package providertest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/slogger/core"
	"github.com/philipp01105/slogger/provider"
)

func TestProvider_RecordsCopies(t *testing.T) {
	p := New("app", nil)

	rec := core.GetRecord()
	rec.Logger = "app"
	rec.Level = core.WarnLevel
	rec.Payload = "disk low"
	require.NoError(t, p.Write(rec))
	core.PutRecord(rec)

	records := p.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "app", records[0].Logger)
	assert.Equal(t, core.WarnLevel, records[0].Level)
	assert.Equal(t, "disk low", records[0].Payload)
}

func TestProvider_Failures(t *testing.T) {
	p := New("app", nil)
	boom := errors.New("boom")

	p.FailWrites(boom)
	assert.ErrorIs(t, p.Write(&core.Record{}), boom)

	p.FailWrites(nil)
	p.PanicOnWrite("kaboom")
	assert.PanicsWithValue(t, "kaboom", func() { _ = p.Write(&core.Record{}) })

	p.FailClose(boom)
	assert.ErrorIs(t, p.Close(), boom)
	assert.Equal(t, 1, p.Closed())
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	p, err := f.New("app", provider.Settings{"target": "x"})
	require.NoError(t, err)
	assert.Same(t, p, f.Last())
	assert.Equal(t, "x", f.Last().Settings["target"])

	f.Fail(ErrConstruct)
	_, err = f.New("app", nil)
	assert.ErrorIs(t, err, provider.ErrInit)
	assert.ErrorIs(t, err, ErrConstruct)

	assert.Equal(t, 2, f.Calls())
	assert.Len(t, f.Built(), 1)
}
