package storefront

import (
	"context"
	"time"
)

// Stage is one step of a timed display sequence (hero slideshow,
// statistics count-up phases).
type Stage struct {
	Name     string
	Duration time.Duration
}

// Sequence drives a list of timed stages from a single scheduler instead
// of nested timer callbacks. StageAt makes the schedule testable without
// running it.
type Sequence struct {
	stages []Stage
	loop   bool
}

func NewSequence(stages []Stage, loop bool) *Sequence {
	return &Sequence{stages: stages, loop: loop}
}

// Total is the duration of one full pass.
func (s *Sequence) Total() time.Duration {
	var total time.Duration
	for _, stage := range s.stages {
		total += stage.Duration
	}
	return total
}

// StageAt returns the stage active at the given elapsed time. For a
// looping sequence elapsed wraps; otherwise times past the end stick to
// the last stage.
func (s *Sequence) StageAt(elapsed time.Duration) (Stage, bool) {
	if len(s.stages) == 0 {
		return Stage{}, false
	}
	total := s.Total()
	if total == 0 {
		return s.stages[len(s.stages)-1], true
	}
	if s.loop {
		elapsed = elapsed % total
	} else if elapsed >= total {
		return s.stages[len(s.stages)-1], true
	}
	for _, stage := range s.stages {
		if elapsed < stage.Duration {
			return stage, true
		}
		elapsed -= stage.Duration
	}
	return s.stages[len(s.stages)-1], true
}

// Run applies each stage in order until the context is cancelled or, for
// non-looping sequences, the schedule ends.
func (s *Sequence) Run(ctx context.Context, apply func(Stage)) {
	for {
		for _, stage := range s.stages {
			apply(stage)
			timer := time.NewTimer(stage.Duration)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		if !s.loop {
			return
		}
	}
}
