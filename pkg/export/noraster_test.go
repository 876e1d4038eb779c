//go:build noraster

package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/export"
)

func TestRasterExcluded(t *testing.T) {
	assert.False(t, export.Available(export.BackendRaster))

	_, err := export.CreateExport(document.New(), nil, export.BackendRaster)
	assert.ErrorIs(t, err, export.ErrBackendUnavailable)

	// the default does not depend on the excluded backend
	exp, err := export.CreateExport(document.New(), nil, export.BackendDefault)
	require.NoError(t, err)
	assert.Equal(t, export.BackendVector, exp.Backend())
}
