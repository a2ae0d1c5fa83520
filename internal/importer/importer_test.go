package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suteetoe/storecatalog/internal/model"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeCreator struct {
	created []string
	failOn  string
}

func (f *fakeCreator) CreateStore(_ context.Context, in repository.StoreInput) (*model.Store, error) {
	if in.Name == f.failOn {
		return nil, errors.New("UNIQUE constraint failed: stores.name")
	}
	f.created = append(f.created, in.Name)
	return &model.Store{ID: uint(len(f.created)), Name: in.Name}, nil
}

type countingObserver struct {
	ok, failed int
}

func (o *countingObserver) ObserveImport(err error) {
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stores.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImport_Success(t *testing.T) {
	creator := &fakeCreator{}
	observer := &countingObserver{}
	path := writeFile(t, `[{"name": "North"}, {"name": "South", "city": "ignored"}]`)

	result, err := New(path, creator, observer).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"North", "South"}, creator.created)
	assert.Equal(t, 2, observer.ok)
}

func TestImport_MissingFile(t *testing.T) {
	imp := New(filepath.Join(t.TempDir(), "stores.json"), &fakeCreator{}, nil)

	_, err := imp.Import(context.Background())
	assert.ErrorIs(t, err, ErrFileMissing)
	assert.Equal(t, "stores.json", imp.FileName())
}

func TestImport_PartialFailureKeepsEarlierRecords(t *testing.T) {
	creator := &fakeCreator{failOn: "Dup"}
	observer := &countingObserver{}
	path := writeFile(t, `[{"name": "A"}, {"name": "Dup"}, {"name": "C"}]`)

	result, err := New(path, creator, observer).Import(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFileMissing)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{"A"}, creator.created)
	assert.Equal(t, 1, observer.ok)
	assert.Equal(t, 1, observer.failed)
}

func TestImport_InvalidContent(t *testing.T) {
	tests := map[string]string{
		"not json":     `{{{`,
		"not an array": `{"name": "A"}`,
		"missing name": `[{"title": "A"}]`,
		"wrong type":   `[{"name": 5}]`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			creator := &fakeCreator{}
			_, err := New(writeFile(t, content), creator, nil).Import(context.Background())
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrFileMissing)
			assert.Empty(t, creator.created)
		})
	}
}

func TestImport_EmptyNameIsAccepted(t *testing.T) {
	creator := &fakeCreator{failOn: "-"}

	result, err := New(writeFile(t, `[{"name": ""}]`), creator, nil).Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{""}, creator.created)
}

func TestImport_LogsToContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))

	_, err := New(writeFile(t, `[{"name": "A"}]`), &fakeCreator{}, nil).Import(ctx)
	require.NoError(t, err)

	entries := logs.FilterMessage("Stores imported").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 1, entries[0].ContextMap()["imported"])
}
