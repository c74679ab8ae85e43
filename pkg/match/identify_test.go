package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/catalog/mocks"
	"github.com/kasuboski/episodez/pkg/rules"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func fixedClock() time.Time {
	return time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestMatcher_Identify(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemory(testSeries())
	m := New(Config{Rules: rules.Defaults(), DateCheck: true}, store, WithClock(fixedClock))
	show := &catalog.Show{ID: 1, SeriesID: 10, Name: "Show"}

	tests := []struct {
		name  string
		entry *Entry
		show  *catalog.Show
		want  Result
	}{
		{
			name:  "nil entry",
			entry: nil,
			show:  show,
			want:  NoMatch(),
		},
		{
			name:  "file by pattern",
			entry: &Entry{Name: "Show.S03E08.mkv", Ext: ".mkv", Dir: "/downloads"},
			show:  show,
			want:  Result{Season: 3, Episode: 8, MaxEpisode: Unknown},
		},
		{
			name:  "file by air date",
			entry: &Entry{Name: "Show.2020.03.15.x264.mkv", Ext: ".mkv", Dir: "/downloads"},
			show:  show,
			want:  Result{Season: 1, Episode: 5, MaxEpisode: Unknown},
		},
		{
			name:  "file without show skips air date",
			entry: &Entry{Name: "Show.2020.03.15.x264.mkv", Ext: ".mkv", Dir: "/downloads"},
			show:  nil,
			want:  NoMatch(),
		},
		{
			name:  "directories never check air dates",
			entry: &Entry{Name: "Show 2020-03-15", Dir: "/downloads", IsDir: true},
			show:  show,
			want:  NoMatch(),
		},
		{
			name:  "directory by pattern",
			entry: &Entry{Name: "Show.S02E03.1080p", Dir: "/downloads", IsDir: true},
			show:  show,
			want:  Result{Season: 2, Episode: 3, MaxEpisode: Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Identify(ctx, tt.entry, tt.show)

			assert.Equal(t, tt.want.Season, got.Season)
			assert.Equal(t, tt.want.Episode, got.Episode)
			assert.Equal(t, tt.want.MaxEpisode, got.MaxEpisode)
		})
	}
}

func TestMatcher_IdentifyPattern(t *testing.T) {
	store := catalog.NewMemory(testSeries())
	m := New(Config{Rules: rules.Defaults(), DateCheck: true}, store, WithClock(fixedClock))
	show := &catalog.Show{ID: 1, SeriesID: 10, Name: "Show"}

	got := m.IdentifyPattern(context.Background(), &Entry{Name: "Show.2020.03.15.x264.mkv", Ext: ".mkv"}, show)
	assert.False(t, got.Success())
}

func TestMatcher_Identify_CatalogError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().GetSeries(gomock.Any(), int64(10)).Return(nil, errors.New("unavailable")).Times(2)

	m := New(Config{Rules: rules.Defaults(), DateCheck: true}, store)
	show := &catalog.Show{ID: 1, SeriesID: 10, Name: "Show"}

	got := m.Identify(context.Background(), &Entry{Name: "Show.S03E08.mkv", Ext: ".mkv"}, show)
	assert.Equal(t, 3, got.Season)
	assert.Equal(t, 8, got.Episode)

	got = m.Identify(context.Background(), &Entry{Name: "Show.2020.03.15.mkv", Ext: ".mkv"}, show)
	assert.False(t, got.Success())
}

func TestMatcher_Identify_DateCheckDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	m := New(Config{Rules: rules.Defaults()}, store)
	show := &catalog.Show{ID: 1, SeriesID: 10, Name: "Show"}

	got := m.Identify(context.Background(), &Entry{Name: "Show.S01E04.mkv", Ext: ".mkv"}, show)
	assert.Equal(t, 1, got.Season)
	assert.Equal(t, 4, got.Episode)
}

func TestEntry_Stem(t *testing.T) {
	assert.Equal(t, "Show.S01E02", Entry{Name: "Show.S01E02.mkv", Ext: ".mkv"}.Stem())
	assert.Equal(t, "Show.S01E02", Entry{Name: "Show.S01E02", IsDir: true}.Stem())
}
