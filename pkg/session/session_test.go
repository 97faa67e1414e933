package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/cardboard/pkg/card"
)

func snapshot(t *testing.T, d *card.Document) string {
	t.Helper()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	return string(b)
}

func seeded(t *testing.T) *card.Document {
	t.Helper()
	d := card.New()
	id := d.AddSection("Tools")
	_, err := d.AddItem(id, "", card.KindIcons, map[string]any{"icon": "a.png", "url": "https://a"})
	require.NoError(t, err)
	d.SetSectionColor(id, card.Light, "#aaa")
	d.SetSectionColor(id, card.Dark, "#bbb")
	d.Header["title"] = "Home"
	return d
}

func TestEditIsIsolatedUntilCommit(t *testing.T) {
	live := seeded(t)
	before := snapshot(t, live)
	e := New(live)

	require.NoError(t, e.Begin())
	require.True(t, e.Editing())
	require.NotSame(t, live, e.Current())

	w := e.Current()
	id := w.Sections[0].ID
	_, err := w.AddItem(id, "Later", card.KindSubtasks, map[string]any{"text": "read"})
	require.NoError(t, err)
	w.AddSection("Bills")
	w.DarkMode = true
	w.Header["title"] = "Changed"
	w.ContentOf(id).Bucket(card.DefaultSubtitle).Icons[0].URL = "https://changed"

	assert.Equal(t, before, snapshot(t, live), "live changed during edit")

	require.NoError(t, e.Commit())
	assert.False(t, e.Editing())
	assert.Same(t, live, e.Current())
	assert.True(t, live.DarkMode)
	assert.Len(t, live.Sections, 2)
	assert.Equal(t, "Changed", live.Header["title"])
	assert.Equal(t, "https://changed", live.ContentOf(id).Bucket(card.DefaultSubtitle).Icons[0].URL)
	assert.Equal(t, []string{card.DefaultSubtitle, "Later"}, live.ContentOf(id).Subtitles())
}

func TestDiscardRestoresLive(t *testing.T) {
	live := seeded(t)
	before := snapshot(t, live)
	e := New(live)

	require.NoError(t, e.Begin())
	w := e.Current()
	require.NoError(t, w.DeleteSection(w.Sections[0].ID))
	w.SetNote("x", "note")
	require.NoError(t, e.Discard())

	assert.Equal(t, before, snapshot(t, live))
	assert.False(t, e.Editing())
}

func TestStateErrors(t *testing.T) {
	e := New(nil)
	assert.ErrorIs(t, e.Commit(), ErrNotEditing)
	assert.ErrorIs(t, e.Discard(), ErrNotEditing)
	require.NoError(t, e.Begin())
	assert.ErrorIs(t, e.Begin(), ErrAlreadyEditing)
}

func TestCommitKeepsUntouchedTheme(t *testing.T) {
	live := seeded(t)
	id := live.Sections[0].ID
	e := New(live)

	require.NoError(t, e.Begin())
	// The working copy knows only the light color of this entry.
	e.Current().SectionColors[id] = card.ColorPair{Light: "#ccc"}
	require.NoError(t, e.Commit())

	assert.Equal(t, card.ColorPair{Light: "#ccc", Dark: "#bbb"}, live.SectionColors[id])
}

func TestMergeColorsIsAdditive(t *testing.T) {
	live := card.New()
	live.SubtitleColors["a:x"] = card.ColorPair{Dark: "#111"}
	live.SubtitleColors["b:y"] = card.ColorPair{Light: "#222"}
	working := card.New()
	working.SubtitleColors["a:x"] = card.ColorPair{Light: "#333"}

	Merge(live, working)

	assert.Equal(t, map[string]card.ColorPair{
		"a:x": {Light: "#333", Dark: "#111"},
		"b:y": {Light: "#222"},
	}, live.SubtitleColors)
}

func TestRefreshProjectsLiveChanges(t *testing.T) {
	live := seeded(t)
	e := New(live)
	assert.False(t, e.Refresh())

	require.NoError(t, e.Begin())
	e.Current().DarkMode = true

	// A change made to live directly, as an import does.
	id := live.AddSection("Imported")
	require.True(t, e.Refresh())
	require.NoError(t, e.Commit())

	_, ok := live.Section(id)
	assert.True(t, ok, "commit reverted a change made to live during the session")
	assert.False(t, live.DarkMode, "refresh replaced the working copy")
}

func TestCommitDropsDeletedSectionMetadata(t *testing.T) {
	live := seeded(t)
	gone := live.AddSection("Bills")
	live.SetSectionColor(gone, card.Light, "#f00")
	live.SetSubtitleColor(gone, card.DefaultSubtitle, card.Dark, "#0f0")
	kept := live.Sections[0].ID
	require.NoError(t, live.AddSubtitle(kept, "Later"))
	live.SetSubtitleColor(kept, "Later", card.Light, "#00f")
	e := New(live)

	require.NoError(t, e.Begin())
	require.NoError(t, e.Current().DeleteSection(gone))
	require.NoError(t, e.Current().DeleteSubtitle(kept, "Later"))
	require.NoError(t, e.Commit())

	assert.NotContains(t, live.Content, gone)
	assert.NotContains(t, live.SectionColors, gone)
	assert.NotContains(t, live.SubtitleColors, card.SubtitleKey(gone, card.DefaultSubtitle))
	assert.NotContains(t, live.SubtitleColors, card.SubtitleKey(kept, "Later"))
	assert.Equal(t, card.ColorPair{Light: "#aaa", Dark: "#bbb"}, live.SectionColors[kept])

	// The freed id is handed out again and must start without colors.
	require.NoError(t, e.Begin())
	again := e.Current().AddSection("New")
	require.NoError(t, e.Commit())
	require.Equal(t, gone, again)
	assert.NotContains(t, live.SectionColors, again)
	assert.NotContains(t, live.SubtitleColors, card.SubtitleKey(again, card.DefaultSubtitle))
}
