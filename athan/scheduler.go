package athan

import (
	"fmt"
	"time"

	"github.com/blackrosezy/go-athan-dubai/solat"
)

const dateLayout = "2006-01-02"

// Scheduler records which prayers are due on a day. It fires nothing; a
// notifier would read Tasks to decide what to play.
type Scheduler struct {
	configuration map[string]interface{}
	tasks         map[string]string
}

func NewScheduler(timezone string) *Scheduler {
	return &Scheduler{
		configuration: map[string]interface{}{"timezone": timezone},
		tasks:         map[string]string{},
	}
}

// Configure merges settings into the configuration, later values winning.
func (s *Scheduler) Configure(settings map[string]interface{}) {
	for k, v := range settings {
		s.configuration[k] = v
	}
}

// RecordDay replaces the recorded tasks with one "<date>:<prayer>" entry
// per prayer in schedule.
func (s *Scheduler) RecordDay(schedule solat.Schedule, day time.Time) {
	label := "unspecified"
	if !day.IsZero() {
		label = day.Format(dateLayout)
	}

	tasks := make(map[string]string, len(schedule))
	for name, at := range schedule {
		tasks[fmt.Sprintf("%s:%s", label, name)] = at
	}
	s.tasks = tasks
}

func (s *Scheduler) Tasks() map[string]string {
	out := make(map[string]string, len(s.tasks))
	for k, v := range s.tasks {
		out[k] = v
	}
	return out
}

func (s *Scheduler) Configuration() map[string]interface{} {
	out := make(map[string]interface{}, len(s.configuration))
	for k, v := range s.configuration {
		out[k] = v
	}
	return out
}
