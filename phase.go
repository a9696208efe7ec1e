package bookstat

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Phase is a stage of a statistics run.
type Phase int

const (
	ParsePhase Phase = iota
	RankPhase
	WritePhase
)

func (p Phase) String() string {
	switch p {
	case ParsePhase:
		return "Parse"
	case RankPhase:
		return "Rank"
	case WritePhase:
		return "Write"
	}
	return "Unknown"
}

// timePhase runs fn and returns how long it took.
func timePhase(p Phase, fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	log.Debugf("%s phase took %s", p, elapsed)
	return elapsed, err
}
