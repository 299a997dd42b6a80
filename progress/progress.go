// Package progress reports how far a long asset load has got.
//
// Implementations include:
//   - LogTracker: logs the completed percentage at most once per interval
//   - BarTracker: renders a terminal progress bar using pterm
//   - Nop: reports nothing
package progress

import (
	"sync"
	"time"

	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/catrim/errors"
)

// Tracker receives the lifecycle of one job: Start with the total number of
// units, any number of Update calls with units just completed, then Close.
type Tracker interface {
	Start(total int)
	Update(n int)
	Close()
}

// Kinds accepted by New.
const (
	KindLog  = "log"
	KindBar  = "bar"
	KindNone = "none"
)

// DefaultLogInterval is how often LogTracker reports.
const DefaultLogInterval = 30 * time.Second

// New returns the tracker named by kind.
func New(kind string, log *zap.SugaredLogger) (Tracker, error) {
	switch kind {
	case KindLog, "":
		return NewLogTracker(log, DefaultLogInterval), nil
	case KindBar:
		return NewBarTracker("Loading categories"), nil
	case KindNone:
		return Nop{}, nil
	default:
		return nil, errors.WithHintf(
			errors.NewInvalidRequestError("unknown progress kind %q", kind),
			"use one of %s, %s, %s", KindLog, KindBar, KindNone)
	}
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)  {}
func (Nop) Update(int) {}
func (Nop) Close()     {}

// LogTracker logs the completed percentage, rate limited to one line per
// interval, plus a line at start and close.
type LogTracker struct {
	logger   *zap.SugaredLogger
	interval time.Duration

	mu        sync.Mutex
	total     int
	completed int
	sometimes *rate.Sometimes
}

// NewLogTracker creates a tracker that logs through log every interval.
func NewLogTracker(log *zap.SugaredLogger, interval time.Duration) *LogTracker {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LogTracker{logger: log, interval: interval}
}

func (t *LogTracker) Start(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = total
	t.completed = 0
	t.sometimes = &rate.Sometimes{Interval: t.interval}
	t.logger.Infow("Starting job", "total", total)
}

func (t *LogTracker) Update(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.completed += n
	if t.sometimes == nil || t.total <= 0 {
		return
	}
	t.sometimes.Do(func() {
		t.logger.Infof("[ %5.1f%% ]", float64(t.completed)/float64(t.total)*100)
	})
}

func (t *LogTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Infow("Finished job", "completed", t.completed)
	t.completed = 0
	t.sometimes = nil
}

// BarTracker renders a pterm progress bar.
type BarTracker struct {
	title string
	bar   *pterm.ProgressbarPrinter
}

// NewBarTracker creates a progress bar with the given title.
func NewBarTracker(title string) *BarTracker {
	return &BarTracker{title: title}
}

func (t *BarTracker) Start(total int) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(t.title).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		pterm.Warning.Printf("Progress bar unavailable: %v\n", err)
		return
	}
	t.bar = bar
}

func (t *BarTracker) Update(n int) {
	if t.bar != nil {
		t.bar.Add(n)
	}
}

func (t *BarTracker) Close() {
	if t.bar != nil {
		_, _ = t.bar.Stop()
		t.bar = nil
	}
}
