package utils

import (
	"fmt"
	"time"
)

// smoothing is the weight given to the newest sample in moving averages
const smoothing = 0.1

// Stats tracks run-wide performance and population figures
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	PeakPopulation       int
	TotalGenerations     int
	Restarts             int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one rendered generation and how long its frame took
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.PeakPopulation = max(s.PeakPopulation, population)

	if duration > 0 {
		rate := 1.0 / duration.Seconds()
		if s.GenerationsPerSecond == 0 {
			s.GenerationsPerSecond = rate
		} else {
			s.GenerationsPerSecond = s.GenerationsPerSecond*(1-smoothing) + rate*smoothing
		}
	}

	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = s.AveragePopulation*(1-smoothing) + float64(population)*smoothing
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

// Summary is the one-line report printed when the run ends
func (s *Stats) Summary() string {
	return fmt.Sprintf("%d generations in %.1fs | %.1f gen/sec | avg population %.1f | peak %d | restarts %d",
		s.TotalGenerations, s.Runtime().Seconds(), s.GenerationsPerSecond,
		s.AveragePopulation, s.PeakPopulation, s.Restarts)
}
