package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takeoffbot/takeoff/internal/application"
)

func TestExtractPR_StandardURL(t *testing.T) {
	pr := application.ExtractPR("please merge https://github.com/acme/widgets/pull/7")

	require.NotNil(t, pr)
	assert.Equal(t, "acme", pr.Owner)
	assert.Equal(t, "widgets", pr.Repo)
	assert.Equal(t, 7, pr.PullNumber)
	assert.Equal(t, "https://github.com/acme/widgets/pull/7", pr.URL)
}

func TestExtractPR_HyphenatedNames(t *testing.T) {
	pr := application.ExtractPR("merge https://github.com/my-org/my-repo.v2/pull/100")

	require.NotNil(t, pr)
	assert.Equal(t, "my-org", pr.Owner)
	assert.Equal(t, "my-repo.v2", pr.Repo)
	assert.Equal(t, 100, pr.PullNumber)
}

func TestExtractPR_FirstMatchWins(t *testing.T) {
	text := "merge https://github.com/acme/first/pull/1 not https://github.com/acme/second/pull/2"

	pr := application.ExtractPR(text)

	require.NotNil(t, pr)
	assert.Equal(t, "first", pr.Repo)
	assert.Equal(t, 1, pr.PullNumber)
}

func TestExtractPR_NoMatch(t *testing.T) {
	cases := map[string]string{
		"plain text":      "just a plain message",
		"repo URL only":   "https://github.com/acme/widgets",
		"issue URL":       "https://github.com/acme/widgets/issues/7",
		"non-numeric ref": "https://github.com/acme/widgets/pull/abc",
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, application.ExtractPR(text))
		})
	}
}

func TestHasMergeIntent_Matches(t *testing.T) {
	cases := []string{
		"please merge this when available",
		"merge https://github.com/org/repo/pull/1",
		"can u https://github.com/org/repo/pull/2",
		"Can U merge this?",
		"MERGE it now",
	}

	for _, text := range cases {
		assert.True(t, application.HasMergeIntent(text), "expected intent in %q", text)
	}
}

func TestHasMergeIntent_NoMatch(t *testing.T) {
	cases := []string{
		"LGTM, looks good to me",
		"approved",
		"the submarine submerged",
		"left a comment",
	}

	for _, text := range cases {
		assert.False(t, application.HasMergeIntent(text), "unexpected intent in %q", text)
	}
}

func TestIsAuthorized(t *testing.T) {
	allowed := map[string]struct{}{
		"U111": {},
		"U222": {},
	}

	assert.True(t, application.IsAuthorized("U111", allowed))
	assert.False(t, application.IsAuthorized("U999", allowed))
}

func TestIsAuthorized_EmptySetDeniesAll(t *testing.T) {
	assert.False(t, application.IsAuthorized("U111", map[string]struct{}{}))
	assert.False(t, application.IsAuthorized("", map[string]struct{}{}))
	assert.False(t, application.IsAuthorized("U111", nil))
}
