package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jeffholland/drillbuilder/internal/models"
)

func newBlank(t *testing.T, canonical string, alternates ...string) *models.AnswerComponent {
	t.Helper()
	blank := &models.AnswerComponent{
		Type:          models.ComponentTypeClozeBlank,
		CorrectAnswer: canonical,
	}
	if len(alternates) > 0 {
		require.NoError(t, blank.SetAlternates(alternates))
	}
	return blank
}

func TestClassifyBlank(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		blank     *models.AnswerComponent
		want      MatchResult
	}{
		{"canonical exact", "perro", newBlank(t, "perro"), MatchExact},
		{"alternate exact", "can", newBlank(t, "perro", "can", "chucho"), MatchExact},
		{"canonical typo", "pero", newBlank(t, "perro"), MatchTypo},
		{"alternate typo", "chuco", newBlank(t, "perro", "chucho"), MatchTypo},
		{"no match anywhere", "gato", newBlank(t, "perro", "can"), MatchMismatch},
		{"empty submission", "", newBlank(t, "perro"), MatchMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyBlank(tt.submitted, tt.blank, false))
		})
	}
}

// An exact hit on an alternate must win over a typo-distance hit on the
// canonical answer, even though the canonical is checked first.
func TestClassifyBlank_ExactBeatsTypo(t *testing.T) {
	blank := newBlank(t, "color", "colour")

	assert.Equal(t, MatchExact, ClassifyBlank("colour", blank, false))
}

func TestClassifyBlank_CaseSensitivity(t *testing.T) {
	blank := newBlank(t, "Berlin")

	assert.Equal(t, MatchExact, ClassifyBlank("berlin", blank, false))
	assert.Equal(t, MatchTypo, ClassifyBlank("berlin", blank, true))
	assert.Equal(t, MatchExact, ClassifyBlank("Berlin", blank, true))
}

func TestClassifyBlank_MalformedAlternatesIgnored(t *testing.T) {
	blank := newBlank(t, "perro")
	blank.AlternateAnswers = datatypes.JSON(`{"not":"a list"}`)

	assert.Equal(t, MatchExact, ClassifyBlank("perro", blank, false))
	assert.Equal(t, MatchMismatch, ClassifyBlank("can", blank, false))
}
