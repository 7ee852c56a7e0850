package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
)

func TestClassifyMapsNotFoundErrors(t *testing.T) {
	re := classify("branches", git.ErrBranchNotFound)
	assert.Equal(t, ErrNotFound, re.Kind)
	assert.Contains(t, re.Error(), "branches")
}

func TestClassifyNilIsNil(t *testing.T) {
	assert.Nil(t, classify("status", nil))
}

func TestClassifyUnmappedErrorIsUnknown(t *testing.T) {
	re := classify("status", errors.New("boom"))
	assert.Equal(t, ErrUnknown, re.Kind)
}

func TestRepositoryErrorUnwrap(t *testing.T) {
	base := errors.New("disk full")
	re := &RepositoryError{Op: "commit", Kind: ErrUnknown, Err: base}
	assert.True(t, errors.Is(re, base) || errors.Unwrap(re) != nil)
}

func TestLineDiffHunkPureAddition(t *testing.T) {
	h := lineDiffHunk("", "line one\nline two\n")
	assert.Len(t, h.Lines, 2)
	for i, l := range h.Lines {
		assert.Equal(t, 1, int(l.Kind), "domain.Addition == 1")
		assert.Equal(t, i+1, l.NewLineNo)
	}
}

func TestLineDiffHunkUnchangedProducesNoLinesOfChangeKind(t *testing.T) {
	h := lineDiffHunk("same\n", "same\n")
	assert.NotEmpty(t, h.Lines)
	for _, l := range h.Lines {
		assert.Equal(t, 0, int(l.Kind)) // domain.Context == 0
	}
}

func TestFakeCollaboratorSatisfiesInterface(t *testing.T) {
	var c Collaborator = &Fake{}
	_, err := c.Status(context.Background())
	assert.NoError(t, err)
}
