package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New(ErrCodeUnsupportedElement, "unsupported element")
	assert.Equal(t, "[CPX_001] unsupported element", e.Error())

	withDetail := e.WithDetail("atom=3 element=Fe")
	assert.Equal(t, "[CPX_001] unsupported element: atom=3 element=Fe", withDetail.Error())

	// WithDetail must not mutate the original.
	assert.Empty(t, e.Detail)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))

	cause := fmt.Errorf("counts line too short")
	wrapped := Wrap(cause, ErrCodeMoleculeParse, "failed to parse molecule")
	require.NotNil(t, wrapped)
	assert.Equal(t, ErrCodeMoleculeParse, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_PreservesCodeForUnknown(t *testing.T) {
	inner := New(ErrCodeDegenerateBondIndex, "degenerate bond index")
	outer := Wrap(inner, CodeUnknown, "scoring failed")
	assert.Equal(t, ErrCodeDegenerateBondIndex, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeMissingAnnotation, "no rank for atom")
	outer := Wrap(inner, ErrCodeInternal, "score aborted")

	assert.True(t, IsCode(outer, ErrCodeMissingAnnotation))
	assert.True(t, IsCode(outer, ErrCodeInternal))
	assert.False(t, IsCode(outer, ErrCodeUnsupportedElement))
	assert.False(t, IsCode(nil, ErrCodeInternal))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(fmt.Errorf("plain")))
	assert.Equal(t, ErrCodeMalformedMolecule, GetCode(New(ErrCodeMalformedMolecule, "bad bond")))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatusForCode(ErrCodeUnsupportedElement))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeMoleculeParse))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "CPX", ModuleForCode(ErrCodeDegenerateBondIndex))
	assert.Equal(t, "MOL", ModuleForCode(ErrCodeMalformedMolecule))
	assert.Equal(t, "UNKNOWN", ModuleForCode(ErrorCode("")))
}
