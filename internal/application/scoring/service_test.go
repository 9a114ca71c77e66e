package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boskovicgroup/bottchercomplexity/internal/config"
	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

const benzeneMol = `benzene
  testdata

  6  6  0  0  0  0  0  0  0  0999 V2000
    0.0000    1.4000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.2124    0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    1.2124   -0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    0.0000   -1.4000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
   -1.2124   -0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
   -1.2124    0.7000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  4  0
  2  3  4  0
  3  4  4  0
  4  5  4  0
  5  6  4  0
  6  1  4  0
M  END
`

const ferroceneLikeMol = `unsupported
  testdata

  2  1  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 Fe  0  0  0  0  0  0  0  0  0  0  0  0
    1.5000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
M  END
`

func newTestService(cfg config.ScoringConfig) *Service {
	return NewService(cfg, logging.NewNopLogger(), nil)
}

func TestService_ScoreMolfile_Benzene(t *testing.T) {
	svc := newTestService(config.ScoringConfig{})

	res, err := svc.ScoreMolfile("test", benzeneMol, false)
	require.NoError(t, err)

	assert.Equal(t, "benzene", res.Name)
	assert.Equal(t, 6, res.AtomCount)
	assert.InDelta(t, 3*math.Log2(20), res.Score, 1e-9)
	assert.Empty(t, res.Contributions)
}

func TestService_ScoreMolfile_Diagnostics(t *testing.T) {
	svc := newTestService(config.ScoringConfig{})

	res, err := svc.ScoreMolfile("test", benzeneMol, true)
	require.NoError(t, err)
	require.Len(t, res.Contributions, 1)
	assert.Equal(t, "C", res.Contributions[0].Element)
	assert.Equal(t, 3, res.Contributions[0].Full)
}

func TestService_ScoreMolfile_ParseFailure(t *testing.T) {
	svc := newTestService(config.ScoringConfig{})

	_, err := svc.ScoreMolfile("test", "not a molfile", false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeParse))
}

func TestService_ScoreMolfile_UnsupportedElement(t *testing.T) {
	svc := newTestService(config.ScoringConfig{})

	_, err := svc.ScoreMolfile("test", ferroceneLikeMol, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedElement))
}

func TestService_ScoreMolfile_AtomLimit(t *testing.T) {
	svc := newTestService(config.ScoringConfig{MaxAtoms: 3})

	_, err := svc.ScoreMolfile("test", benzeneMol, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestService_SetDiagnostics(t *testing.T) {
	svc := newTestService(config.ScoringConfig{Diagnostics: false})
	assert.False(t, svc.Diagnostics())

	svc.SetDiagnostics(true)
	assert.True(t, svc.Diagnostics())

	svc.SetDiagnostics(false)
	assert.False(t, svc.Diagnostics())
}
