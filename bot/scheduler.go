package bot

import (
	"fmt"
	"log"
	"ritual-war/game"
	"ritual-war/model"
	"strings"
	"sync"
	"time"
)

// Resolver is what the scheduler needs from the resolution engine.
type Resolver interface {
	ListStates() ([]model.GameState, error)
	DailyTick(guildID string, now time.Time) (*model.TickReport, error)
	SweepExpired(now time.Time) (sigs, claims int64, err error)
}

// Announcer is the delivery sink for reminders.
type Announcer interface {
	Announce(channelID, content string)
}

// Scheduler drives the recurring game work: advancing the day counter at the
// boundary, sweeping expired signatures and claims, and nudging players who
// have not acted yet during the Warm and Cooling periods.
type Scheduler struct {
	engine   Resolver
	notifier Announcer
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

func NewScheduler(engine Resolver, notifier Announcer) *Scheduler {
	return &Scheduler{
		engine:   engine,
		notifier: notifier,
		interval: time.Minute,
		done:     make(chan struct{}),
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RunOnce(time.Now())
			case <-s.done:
				return
			}
		}
	}()
}

// Stop terminates the scheduler gracefully.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

// RunOnce performs a single scheduler pass. A failing guild is logged and
// skipped; it must never take the other guilds down with it.
func (s *Scheduler) RunOnce(now time.Time) {
	if sigs, claims, err := s.engine.SweepExpired(now); err != nil {
		log.Printf("Error sweeping expired records: %v", err)
	} else if sigs+claims > 0 {
		log.Printf("Swept %d expired signatures and %d expired claims", sigs, claims)
	}

	states, err := s.engine.ListStates()
	if err != nil {
		log.Printf("Error listing game states: %v", err)
		return
	}

	for _, state := range states {
		report, err := s.engine.DailyTick(state.GuildID, now)
		if err != nil {
			log.Printf("Error ticking guild %s: %v", state.GuildID, err)
			continue
		}
		if report.DayAdvanced {
			log.Printf("Guild %s advanced to game-day %d", state.GuildID, report.Day)
		}
		if report.RemindDue {
			s.notifier.Announce(report.ChannelID, reminderMessage(report))
		}
	}
}

// reminderMessage lists the players who have not acted today, with more
// urgent wording once the day is cooling down.
func reminderMessage(report *model.TickReport) string {
	mentions := make([]string, 0, len(report.Laggards))
	for _, player := range report.Laggards {
		mentions = append(mentions, fmt.Sprintf("<@%s>", player.UserID))
	}
	list := strings.Join(mentions, ", ")

	if report.Period == game.PeriodCooling {
		return fmt.Sprintf("⏳ **The day is cooling down!** %s — your daily action expires at midnight. Cast now or lose it!", list)
	}
	return fmt.Sprintf("🎭 Daily reminder: %s — you have not cast a spell today. Use /hex, /shield or /mend.", list)
}
