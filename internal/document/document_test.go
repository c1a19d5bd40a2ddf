package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rules(r Result) []Rule {
	out := make([]Rule, 0, len(r.Errors))
	for _, v := range r.Errors {
		out = append(out, v.Rule)
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Run("valid pdf", func(t *testing.T) {
		r := Validate("doc.pdf", 5_000_000, "application/pdf")
		assert.True(t, r.IsValid)
		assert.Empty(t, r.Errors)
	})

	t.Run("size and extension both reported", func(t *testing.T) {
		r := Validate("doc.exe", 20_000_000, "application/pdf")
		require.False(t, r.IsValid)
		assert.Equal(t, []Rule{RuleFileSize, RuleExtension}, rules(r))
	})

	t.Run("exactly max size accepted", func(t *testing.T) {
		r := Validate("scan.PNG", MaxFileSize, "image/png")
		assert.True(t, r.IsValid)
	})

	t.Run("jpeg accepts both extensions", func(t *testing.T) {
		assert.True(t, Validate("a.jpg", 10, "image/jpeg").IsValid)
		assert.True(t, Validate("a.jpeg", 10, "image/jpeg").IsValid)
	})

	t.Run("empty name, zero size and unknown type all reported", func(t *testing.T) {
		r := Validate("  ", 0, "application/zip")
		require.False(t, r.IsValid)
		assert.Equal(t, []Rule{RuleFileName, RuleFileSize, RuleMimeType}, rules(r))
		assert.Len(t, r.Messages(), 3)
	})

	t.Run("docx declared for doc file", func(t *testing.T) {
		r := Validate("policy.doc", 1024, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		assert.Equal(t, []Rule{RuleExtension}, rules(r))
	})
}

func TestValidResultEncodesEmptyErrors(t *testing.T) {
	body, err := json.Marshal(Validate("doc.pdf", 5_000_000, "application/pdf"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"is_valid":true,"errors":[]}`, string(body))
}
