package lessonroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/academy/internal/catalog"
	"github.com/abhisek/academy/internal/gateway"
)

var (
	micrograd = catalog.Lesson{ID: "micrograd", Title: "Building micrograd", Kind: catalog.KindVideo, Source: "VMj-3S1tku0"}
	makemore  = catalog.Lesson{ID: "makemore", Title: "Building makemore", Kind: catalog.KindVideo, Source: "PaCmpygFfXo"}
	article   = catalog.Lesson{ID: "rnn-effectiveness", Title: "RNN Effectiveness", Kind: catalog.KindArticle, Source: "https://karpathy.github.io/2015/05/21/rnn-effectiveness/"}
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestRoom_InitialState(t *testing.T) {
	r := New(micrograd, WithClock(fixedClock()))

	assert.Equal(t, TabOverview, r.Tab())
	assert.Nil(t, r.Session())
	_, ok := r.Assignment()
	assert.False(t, ok)
	require.Len(t, r.Transcript(), 1)
	assert.Equal(t, `Ready to help with "Building micrograd".`, r.Transcript()[0].Text)
	assert.Equal(t, gateway.ChatModel, r.Transcript()[0].Role)
}

func TestRoom_TabsFetchOnce(t *testing.T) {
	r := New(micrograd)

	f := r.SelectTab(TabAssignment)
	require.Equal(t, FetchAssignment, f.Kind)
	assert.True(t, r.Loading())

	assert.Equal(t, FetchNone, r.SelectTab(TabAssignment).Kind, "no duplicate fetch while loading")

	require.True(t, r.ApplyAssignment(f.Token, "# Lab"))
	assert.False(t, r.Loading())

	r.SelectTab(TabOverview)
	assert.Equal(t, FetchNone, r.SelectTab(TabAssignment).Kind, "cached content is not refetched")
	text, ok := r.Assignment()
	assert.True(t, ok)
	assert.Equal(t, "# Lab", text)

	q := r.SelectTab(TabQuiz)
	require.Equal(t, FetchQuiz, q.Kind)
	require.True(t, r.ApplyQuiz(q.Token, threeQuestionQuiz()))
	require.NotNil(t, r.Session())
	r.SelectTab(TabOverview)
	assert.Equal(t, FetchNone, r.SelectTab(TabQuiz).Kind)
}

func TestRoom_ResetClearsEverything(t *testing.T) {
	r := New(micrograd)

	a := r.SelectTab(TabAssignment)
	r.ApplyAssignment(a.Token, "# Lab")
	q := r.SelectTab(TabQuiz)
	r.ApplyQuiz(q.Token, threeQuestionQuiz())
	r.Session().Select(0)
	r.AdvanceQuiz()
	r.PlayVideo()
	r.SetNotes("notes")
	req, ok := r.BeginChat("hello")
	require.True(t, ok)

	r.Reset(makemore)

	assert.Equal(t, TabOverview, r.Tab())
	assert.Nil(t, r.Session())
	_, has := r.Assignment()
	assert.False(t, has)
	assert.Equal(t, VideoNotStarted, r.Video().State())
	assert.Equal(t, 0, r.Video().EmbedKey())
	assert.Empty(t, r.Notes())
	assert.False(t, r.ChatPending())
	require.Len(t, r.Transcript(), 1)
	assert.Contains(t, r.Transcript()[0].Text, "Building makemore")

	assert.False(t, r.ApplyChatReply(req.Token, "late reply"))
	assert.Len(t, r.Transcript(), 1)
}

func TestRoom_StaleResultsDropped(t *testing.T) {
	r := New(micrograd)
	stale := r.SelectTab(TabQuiz)

	r.Reset(makemore)
	fresh := r.SelectTab(TabQuiz)

	assert.False(t, r.ApplyQuiz(stale.Token, gateway.FallbackQuiz()))
	assert.Nil(t, r.Session())
	assert.True(t, r.Loading(), "fresh request still outstanding")

	require.True(t, r.ApplyQuiz(fresh.Token, threeQuestionQuiz()))
	assert.Equal(t, 3, r.Session().Total())
}

func TestRoom_SameLessonResetInvalidatesTokens(t *testing.T) {
	r := New(micrograd)
	f := r.SelectTab(TabAssignment)

	r.Reset(micrograd)

	assert.NotEqual(t, f.Token, r.Token())
	assert.False(t, r.ApplyAssignment(f.Token, "# Lab"))
}

func TestRoom_ApplyWithoutRequestIgnored(t *testing.T) {
	r := New(micrograd)
	assert.False(t, r.ApplyAssignment(r.Token(), "unrequested"))
	assert.False(t, r.ApplyQuiz(r.Token(), threeQuestionQuiz()))
	assert.False(t, r.ApplyChatReply(r.Token(), "unrequested"))
	assert.False(t, r.ApplyNotesSummary(r.Token(), "unrequested"))
}

func TestRoom_AdvanceQuizCarriesLesson(t *testing.T) {
	r := New(micrograd)
	_, ok := r.AdvanceQuiz()
	assert.False(t, ok, "no session before the quiz loads")

	f := r.SelectTab(TabQuiz)
	r.ApplyQuiz(f.Token, threeQuestionQuiz())

	var out Outcome
	for _, c := range []int{0, 1, 2} {
		require.True(t, r.Session().Select(c))
		out, ok = r.AdvanceQuiz()
		require.True(t, ok)
	}
	assert.Equal(t, Outcome{LessonID: "micrograd", Finished: true, Passed: true, Score: 3, Total: 3}, out)
	assert.False(t, r.RetryQuiz())
}

func TestRoom_Video(t *testing.T) {
	r := New(micrograd)
	v := r.Video()

	assert.False(t, v.ForceError(), "cannot fail before playing")
	assert.False(t, v.Retry())
	require.True(t, r.PlayVideo())
	assert.False(t, r.PlayVideo())
	assert.Equal(t, VideoPlaying, v.State())

	require.True(t, v.ForceError())
	assert.Equal(t, VideoErrored, v.State())

	require.True(t, v.Retry())
	assert.Equal(t, VideoPlaying, v.State())
	assert.Equal(t, 1, v.EmbedKey())
	assert.Equal(t,
		"https://www.youtube.com/embed/VMj-3S1tku0?autoplay=1&modestbranding=1&rel=0&instance=1",
		v.PlayerURL(r.Lesson().EmbedURL()))

	a := New(article)
	assert.False(t, a.PlayVideo(), "articles have no player")
}

func TestRoom_Chat(t *testing.T) {
	r := New(micrograd, WithClock(fixedClock()))

	_, ok := r.BeginChat("   ")
	assert.False(t, ok)

	req, ok := r.BeginChat("  what is a Value?  ")
	require.True(t, ok)
	assert.Equal(t, "what is a Value?", req.Message)
	assert.Len(t, req.History, 1, "history excludes the new message")
	assert.True(t, r.ChatPending())

	_, ok = r.BeginChat("second")
	assert.False(t, ok, "one reply at a time")

	require.True(t, r.ApplyChatReply(req.Token, "A scalar with a grad."))
	assert.False(t, r.ChatPending())

	transcript := r.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, gateway.ChatUser, transcript[1].Role)
	assert.Equal(t, gateway.ChatModel, transcript[2].Role)
	assert.Equal(t, "A scalar with a grad.", transcript[2].Text)
}

func TestRoom_NotesSummary(t *testing.T) {
	r := New(micrograd)

	_, ok := r.BeginSummary()
	assert.False(t, ok, "blank notes are not summarized")

	r.SetNotes("chain rule; topological sort")
	tok, ok := r.BeginSummary()
	require.True(t, ok)
	_, ok = r.BeginSummary()
	assert.False(t, ok)

	require.True(t, r.ApplyNotesSummary(tok, "Backprop walks the graph in reverse."))
	assert.Equal(t, "Backprop walks the graph in reverse.", r.Summary())
	assert.False(t, r.SummaryPending())
}

func TestTabCycle(t *testing.T) {
	assert.Equal(t, TabAssignment, TabOverview.Next())
	assert.Equal(t, TabOverview, TabQuiz.Next())
	assert.Equal(t, TabQuiz, TabOverview.Prev())
	assert.Equal(t, "Quiz", TabQuiz.String())
}
