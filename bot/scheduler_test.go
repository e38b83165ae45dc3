package bot

import (
	"errors"
	"ritual-war/game"
	"ritual-war/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	states   []model.GameState
	reports  map[string]*model.TickReport
	failFor  map[string]error
	ticked   []string
	sweeps   int
	sweepErr error
}

func (f *fakeResolver) ListStates() ([]model.GameState, error) {
	return f.states, nil
}

func (f *fakeResolver) DailyTick(guildID string, now time.Time) (*model.TickReport, error) {
	f.ticked = append(f.ticked, guildID)
	if err := f.failFor[guildID]; err != nil {
		return nil, err
	}
	if report, ok := f.reports[guildID]; ok {
		return report, nil
	}
	return &model.TickReport{GuildID: guildID}, nil
}

func (f *fakeResolver) SweepExpired(now time.Time) (int64, int64, error) {
	f.sweeps++
	return 0, 0, f.sweepErr
}

type fakeAnnouncer struct {
	channels []string
	contents []string
}

func (f *fakeAnnouncer) Announce(channelID, content string) {
	f.channels = append(f.channels, channelID)
	f.contents = append(f.contents, content)
}

func TestRunOnceAnnouncesOnlyDueGuilds(t *testing.T) {
	resolver := &fakeResolver{
		states: []model.GameState{{GuildID: "g1"}, {GuildID: "g2"}},
		reports: map[string]*model.TickReport{
			"g1": {
				GuildID:   "g1",
				Period:    game.PeriodWarm,
				RemindDue: true,
				ChannelID: "chan-1",
				Laggards:  []model.Player{{UserID: "alice"}},
			},
			"g2": {GuildID: "g2", Period: game.PeriodWarm},
		},
	}
	announcer := &fakeAnnouncer{}

	NewScheduler(resolver, announcer).RunOnce(time.Now())

	assert.Equal(t, 1, resolver.sweeps)
	assert.Equal(t, []string{"g1", "g2"}, resolver.ticked)
	require.Len(t, announcer.channels, 1)
	assert.Equal(t, "chan-1", announcer.channels[0])
	assert.Contains(t, announcer.contents[0], "<@alice>")
}

func TestRunOnceIsolatesFailingGuild(t *testing.T) {
	resolver := &fakeResolver{
		states:  []model.GameState{{GuildID: "bad"}, {GuildID: "good"}},
		failFor: map[string]error{"bad": errors.New("database is locked")},
		reports: map[string]*model.TickReport{
			"good": {
				GuildID:   "good",
				Period:    game.PeriodCooling,
				RemindDue: true,
				ChannelID: "chan-2",
				Laggards:  []model.Player{{UserID: "bob"}},
			},
		},
	}
	announcer := &fakeAnnouncer{}

	NewScheduler(resolver, announcer).RunOnce(time.Now())

	assert.Equal(t, []string{"bad", "good"}, resolver.ticked, "a failing guild must not stop the pass")
	require.Len(t, announcer.channels, 1)
	assert.Equal(t, "chan-2", announcer.channels[0])
}

func TestRunOnceSurvivesSweepError(t *testing.T) {
	resolver := &fakeResolver{
		states:   []model.GameState{{GuildID: "g1"}},
		sweepErr: errors.New("disk full"),
	}
	announcer := &fakeAnnouncer{}

	NewScheduler(resolver, announcer).RunOnce(time.Now())

	assert.Equal(t, []string{"g1"}, resolver.ticked)
}

func TestReminderMessageWording(t *testing.T) {
	laggards := []model.Player{{UserID: "alice"}, {UserID: "bob"}}

	warm := reminderMessage(&model.TickReport{Period: game.PeriodWarm, Laggards: laggards})
	assert.Contains(t, warm, "<@alice>, <@bob>")
	assert.Contains(t, warm, "Daily reminder")

	cooling := reminderMessage(&model.TickReport{Period: game.PeriodCooling, Laggards: laggards})
	assert.Contains(t, cooling, "cooling down")
	assert.Contains(t, cooling, "expires at midnight")
}

func TestSchedulerStartStop(t *testing.T) {
	resolver := &fakeResolver{}
	s := NewScheduler(resolver, &fakeAnnouncer{})
	s.interval = time.Millisecond

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	assert.Greater(t, resolver.sweeps, 0, "the loop must have run at least once")
}
