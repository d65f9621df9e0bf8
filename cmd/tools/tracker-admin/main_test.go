// cmd/tools/tracker-admin/main_test.go
package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-tracker/internal/tracker/blob"
)

const sample = `[{"id":"x1","dateApplied":"2024-01-12","jobTitle":"SRE","companyName":"Initech","url":"https://i.example",
"status":"Applied","resumeName":"cv","hasCoverLetter":false,"type":"Full-time"}]`

func TestExportBlob(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, exportBlob(ctx, blob.NewMemory(), &buf))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, exportBlob(ctx, blob.NewMemoryWith([]byte(sample)), &buf))
	assert.Equal(t, sample+"\n", buf.String())
}

func TestImportBlob(t *testing.T) {
	ctx := context.Background()

	mem := blob.NewMemory()
	require.NoError(t, importBlob(ctx, mem, []byte(sample), false))
	data, err := mem.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, sample, string(data))

	err = importBlob(ctx, mem, []byte(sample), false)
	assert.ErrorContains(t, err, "not empty")
	assert.NoError(t, importBlob(ctx, mem, []byte(sample), true))

	empty := blob.NewMemoryWith([]byte("[]"))
	assert.NoError(t, importBlob(ctx, empty, []byte(sample), false))
}

func TestImportBlob_RejectsInvalidData(t *testing.T) {
	mem := blob.NewMemory()
	err := importBlob(context.Background(), mem, []byte(`[{"id":"x1"}]`), true)
	assert.ErrorContains(t, err, "invalid applications")
	assert.Equal(t, 0, mem.Writes())
}

func TestValidateStored(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	require.NoError(t, validateStored(ctx, blob.NewMemoryWith([]byte(sample)), &buf))
	assert.Contains(t, buf.String(), "Found 1 applications")

	buf.Reset()
	require.NoError(t, validateStored(ctx, blob.NewMemory(), &buf))
	assert.Contains(t, buf.String(), "No blob stored")

	err := validateStored(ctx, blob.NewMemoryWith([]byte(`{{`)), &buf)
	assert.ErrorContains(t, err, "malformed")
}

func TestListWorkers(t *testing.T) {
	var buf bytes.Buffer
	listWorkers(&buf)
	assert.Contains(t, buf.String(), "create-application-record")
	assert.Contains(t, buf.String(), "build-activity-histogram")
}
