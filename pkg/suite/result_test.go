package suite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/suite"
)

func TestResult(t *testing.T) {
	t.Parallel()

	t.Run("nil result reads as valid", func(t *testing.T) {
		var r *suite.Result
		assert.True(t, r.IsValid())
		assert.Empty(t, r.Errors())
		assert.Empty(t, r.Warnings())
		assert.Nil(t, r.ErrorsFor("x"))
		assert.Zero(t, r.ErrorCount())
	})

	t.Run("tracks first appearance order", func(t *testing.T) {
		r := suite.NewResult()
		r.AddWarning("b", "w")
		r.AddError("a", "e1")
		r.AddError("b", "e2")
		r.AddError("a", "e3")
		assert.Equal(t, []string{"b", "a"}, r.Fields())
		assert.Equal(t, 3, r.ErrorCount())
		assert.False(t, r.IsValidField("a"))
		assert.True(t, r.IsValidField("c"))
	})

	t.Run("errors map is a copy", func(t *testing.T) {
		r := suite.NewResult()
		r.AddError("a", "e")
		m := r.Errors()
		m["a"][0] = "changed"
		assert.Equal(t, []string{"e"}, r.ErrorsFor("a"))
	})

	t.Run("tested fields are deduplicated and merged", func(t *testing.T) {
		a := suite.NewResult()
		a.MarkTested("x")
		a.MarkTested("x")
		b := suite.NewResult()
		b.MarkTested("y")
		a.Merge(b)
		assert.Equal(t, []string{"x", "y"}, a.Tested())

		var r *suite.Result
		assert.Nil(t, r.Tested())
	})

	t.Run("merge", func(t *testing.T) {
		a := suite.NewResult()
		a.AddError("x", "1")
		b := suite.NewResult()
		b.AddError("y", "2")
		b.AddWarning("x", "w")
		a.Merge(b)
		a.Merge(nil)
		assert.Equal(t, []string{"x", "y"}, a.Fields())
		assert.Equal(t, []string{"w"}, a.WarningsFor("x"))
	})
}
