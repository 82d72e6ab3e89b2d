package form

import (
	"strings"
	"testing"

	"github.com/bandhan/bandhan/internal/gift"
	"github.com/stretchr/testify/require"
)

func fillBasicInfo(st *gift.FormState) {
	st.SetBasicInfo(gift.BasicInfo{FromName: "A", ToName: "B", Greeting: "Hi"})
}

func TestNext_InvalidStaysPut(t *testing.T) {
	fields := []struct {
		name  string
		info  gift.BasicInfo
		field string
	}{
		{name: "from", info: gift.BasicInfo{ToName: "B", Greeting: "Hi"}, field: FieldFromName},
		{name: "to", info: gift.BasicInfo{FromName: "A", Greeting: "Hi"}, field: FieldToName},
		{name: "greeting", info: gift.BasicInfo{FromName: "A", ToName: "B"}, field: FieldGreeting},
	}

	for _, tt := range fields {
		t.Run(tt.name, func(t *testing.T) {
			w := New(gift.New(gift.TemplateLoveTimeline))
			w.Update(func(st *gift.FormState) { st.SetBasicInfo(tt.info) })

			require.Equal(t, Invalid, w.Next())
			require.Equal(t, 0, w.Index())
			require.Equal(t, []string{tt.field}, w.Errors().Fields())
			require.False(t, w.State().IsCompleted(0))
		})
	}
}

func TestNext_AdvancesAndMarksCompleted(t *testing.T) {
	w := New(gift.New(gift.TemplateLoveTimeline))
	w.Update(fillBasicInfo)

	require.Equal(t, Advanced, w.Next())
	require.Equal(t, 1, w.Index())
	require.True(t, w.State().IsCompleted(0))
	require.True(t, w.Errors().Valid())
}

func TestUpdate_ClearsErrors(t *testing.T) {
	w := New(gift.New(gift.TemplateLoveTimeline))
	require.Equal(t, Invalid, w.Next())
	require.False(t, w.Errors().Valid())

	w.Update(func(st *gift.FormState) { st.BasicInfo.FromName = "A" })
	require.True(t, w.Errors().Valid())
}

func TestPrev(t *testing.T) {
	w := New(gift.New(gift.TemplateLoveTimeline))
	require.False(t, w.Prev(), "cannot go before the first step")

	w.Update(fillBasicInfo)
	require.Equal(t, Advanced, w.Next())
	require.Equal(t, Invalid, w.Next(), "empty story")

	require.True(t, w.Prev())
	require.Equal(t, 0, w.Index())
	require.True(t, w.State().IsCompleted(0), "prev keeps completed steps")
	require.True(t, w.Errors().Valid())
}

func TestGoTo_Gating(t *testing.T) {
	st := gift.New(gift.TemplateLoveTimeline)
	w := New(st)
	w.Update(fillBasicInfo)
	require.Equal(t, Advanced, w.Next())

	// Not reached, not completed.
	for i := 2; i < len(w.Steps()); i++ {
		require.False(t, w.GoTo(i), "step %d should be gated", i)
		require.Equal(t, 1, w.Index())
	}
	require.False(t, w.GoTo(-1))
	require.False(t, w.GoTo(len(w.Steps())))

	require.True(t, w.GoTo(0))
	require.Equal(t, 0, w.Index())

	// Going back does not keep step 1 reachable; it was never completed.
	require.False(t, w.GoTo(1))
	require.Equal(t, 0, w.Index())
}

func TestGoTo_CompletedAheadIsReachable(t *testing.T) {
	st := gift.New(gift.TemplateLoveTimeline)
	st.MarkCompleted(3)
	w := New(st)

	require.True(t, w.Reachable(3))
	require.True(t, w.GoTo(3))
	require.Equal(t, 3, w.Index())
	require.True(t, w.GoTo(1), "behind the current step")
}

func TestSkip(t *testing.T) {
	st := gift.New(gift.TemplateLoveTimeline)
	w := New(st)
	require.False(t, w.Skip(), "basic-info is not optional")
	require.Equal(t, 0, w.Index())

	st.CurrentStep = IndexOf(w.Steps(), StepSecretLetter)
	// Partially filled letter is still skippable.
	w.Update(func(st *gift.FormState) { st.SetSecretLetter(gift.SecretLetter{Body: "half"}) })
	require.True(t, w.Skip())
	require.Equal(t, IndexOf(w.Steps(), StepPreview), w.Index())
	require.True(t, st.IsCompleted(IndexOf(w.Steps(), StepSecretLetter)))

	require.False(t, w.Skip(), "preview is final and not optional")
}

func TestNext_OnLastStepCompletes(t *testing.T) {
	st := gift.New(gift.TemplateClassicLetter)
	st.CurrentStep = 5
	w := New(st)
	require.True(t, w.IsLastStep())

	require.Equal(t, Completed, w.Next())
	require.Equal(t, 5, w.Index())
	require.True(t, st.IsCompleted(5))
}

func TestNew_ClampsOutOfRange(t *testing.T) {
	st := gift.New(gift.TemplateClassicLetter)
	st.CurrentStep = 42
	st.MarkCompleted(9)
	st.MarkCompleted(-2)
	st.MarkCompleted(1)

	w := New(st)

	require.Equal(t, len(w.Steps())-1, w.Index())
	require.Equal(t, []int{1}, st.CompletedSteps.Sorted())
}

func TestSetTemplate_KeepsStepByID(t *testing.T) {
	st := gift.New(gift.TemplateClassicLetter)
	st.CurrentStep = IndexOf(StepsFor(gift.TemplateClassicLetter), StepPreview)
	st.MarkCompleted(4)
	w := New(st)

	w.SetTemplate(gift.TemplateLoveTimeline)

	require.Equal(t, StepPreview, w.Current().ID)
	require.Equal(t, 6, w.Index())
	require.Equal(t, 299.0, st.TemplatePrice)
	require.True(t, st.IsCompleted(IndexOf(w.Steps(), StepFinalMessage)))
}

func TestSetTemplate_DroppedStepFallsBack(t *testing.T) {
	st := gift.New(gift.TemplateLoveTimeline)
	st.CurrentStep = IndexOf(StepsFor(gift.TemplateLoveTimeline), StepSecretLetter)
	w := New(st)

	w.SetTemplate(gift.TemplateClassicLetter)

	require.Equal(t, StepFinalMessage, w.Current().ID)
	require.Equal(t, 199.0, st.TemplatePrice)
}

func TestProgress(t *testing.T) {
	w := New(gift.New(gift.TemplateLoveTimeline))
	w.Update(fillBasicInfo)
	w.Next()

	done, total := w.Progress()
	require.Equal(t, 1, done)
	require.Equal(t, 7, total)
}

func TestWizard_EndToEndLoveTimeline(t *testing.T) {
	st := gift.New(gift.TemplateLoveTimeline)
	w := New(st)

	w.Update(fillBasicInfo)
	require.Equal(t, Advanced, w.Next())

	w.Update(func(st *gift.FormState) { st.SetStory(strings.Repeat("s", 60)) })
	require.Equal(t, Advanced, w.Next())

	w.Update(func(st *gift.FormState) {
		st.SetReason(0, "x")
		st.SetReason(1, "y")
		st.SetReason(2, "z")
	})
	require.Equal(t, Advanced, w.Next())

	w.Update(func(st *gift.FormState) {
		st.AddPhoto("https://img/1.jpg", "")
		st.AddPhoto("https://img/2.jpg", "")
	})
	require.Equal(t, Advanced, w.Next())

	w.Update(func(st *gift.FormState) { st.SetFinalMessage("Bye") })
	require.Equal(t, Advanced, w.Next())

	require.Equal(t, StepSecretLetter, w.Current().ID)
	require.True(t, w.Skip())

	preview := IndexOf(w.Steps(), StepPreview)
	require.Equal(t, preview, w.Index())
	require.True(t, w.IsLastStep())

	want := []int{}
	for i := range w.Steps() {
		if i != preview {
			want = append(want, i)
		}
	}
	require.Equal(t, want, st.CompletedSteps.Sorted())
}
