package gift

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SnapshotsPrice(t *testing.T) {
	st := New(TemplateLoveTimeline)

	require.Equal(t, TemplateLoveTimeline, st.SelectedTemplate)
	require.Equal(t, 299.0, st.TemplatePrice)
	require.Len(t, st.Reasons, MinReasons)
	require.Empty(t, st.CompletedSteps)
}

func TestNew_UnknownTemplateHasNoPrice(t *testing.T) {
	st := New("disco")
	require.Zero(t, st.TemplatePrice)
}

func TestParseTemplate(t *testing.T) {
	id, err := ParseTemplate("starry-night")
	require.NoError(t, err)
	require.Equal(t, TemplateStarryNight, id)

	_, err = ParseTemplate("disco")
	require.True(t, errors.Is(err, ErrUnknownTemplate))
}

func TestReasons_AddAndRemove(t *testing.T) {
	st := New(TemplateClassicLetter)

	for i := MinReasons; i < MaxReasons; i++ {
		require.True(t, st.AddReason())
	}
	require.False(t, st.AddReason(), "list is capped at MaxReasons")
	require.Len(t, st.Reasons, MaxReasons)

	st.SetReason(0, "first")
	st.SetReason(99, "ignored")
	st.RemoveReason(0)
	require.Len(t, st.Reasons, MaxReasons-1)
	require.NotContains(t, st.Reasons, "first")
}

func TestRemoveReason_KeepsMinimumSlots(t *testing.T) {
	st := New(TemplateClassicLetter)
	st.SetReason(0, "a")
	st.SetReason(1, "b")
	st.SetReason(2, "c")

	st.RemoveReason(1)

	require.Equal(t, []string{"a", "", "c"}, st.Reasons)
	require.Equal(t, []string{"a", "c"}, st.FilledReasons())
}

func TestAddPhoto_RejectsBlankURL(t *testing.T) {
	st := New(TemplatePolaroidMemories)

	require.False(t, st.AddPhoto("   ", "caption"))
	require.True(t, st.AddPhoto(" https://img/1.jpg ", " beach "))
	require.Equal(t, []Photo{{URL: "https://img/1.jpg", Caption: "beach"}}, st.Photos)

	st.SetPhotoCaption(0, "sunset")
	require.Equal(t, "sunset", st.Photos[0].Caption)

	st.RemovePhoto(0)
	require.Empty(t, st.Photos)
}

func TestSetSecretLetter_BlankClears(t *testing.T) {
	st := New(TemplateLoveTimeline)

	st.SetSecretLetter(SecretLetter{Title: "t"})
	require.NotNil(t, st.SecretLetter)
	require.True(t, st.SecretLetter.Started())

	st.SetSecretLetter(SecretLetter{})
	require.Nil(t, st.SecretLetter)
	require.False(t, st.SecretLetter.Started())
}

func TestClone_IsDeep(t *testing.T) {
	st := New(TemplateLoveTimeline)
	st.AddPhoto("https://img/1.jpg", "")
	st.SetSecretLetter(SecretLetter{Title: "t", Body: "b"})
	st.MarkCompleted(0)

	c := st.Clone()
	c.Reasons[0] = "changed"
	c.Photos[0].URL = "changed"
	c.SecretLetter.Title = "changed"
	c.MarkCompleted(4)

	assert.Equal(t, "", st.Reasons[0])
	assert.Equal(t, "https://img/1.jpg", st.Photos[0].URL)
	assert.Equal(t, "t", st.SecretLetter.Title)
	assert.False(t, st.IsCompleted(4))
}

func TestFormState_JSONShape(t *testing.T) {
	st := New(TemplateLoveTimeline)
	st.MarkCompleted(2)
	st.MarkCompleted(0)

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.JSONEq(t, `[0,2]`, string(raw["completedSteps"]))
	require.JSONEq(t, `"love-timeline"`, string(raw["selectedTemplate"]))
	require.Contains(t, raw, "basicInfo")
	require.NotContains(t, raw, "secretLetter")

	var back FormState
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.IsCompleted(0))
	require.True(t, back.IsCompleted(2))
}

func TestNormalize(t *testing.T) {
	var st FormState
	st.Normalize()

	require.Len(t, st.Reasons, MinReasons)
	require.NotNil(t, st.CompletedSteps)
	require.NotNil(t, st.Photos)
}
