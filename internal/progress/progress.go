// Package progress reports the advance of long filesystem walks, either as
// a terminal progress bar or as log lines when the terminal belongs to the
// browser.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Reporter receives walk progress in steps.
type Reporter interface {
	Start(total int64, description string)
	Update(current int64)
	Finish()
}

// Percent returns current as a whole percentage of total.
func Percent(current, total int64) int {
	if total <= 0 {
		return 100
	}
	if current >= total {
		return 100
	}
	return int(current * 100 / total)
}

// CLIProgress draws a progress bar on stderr.
type CLIProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func NewCLIProgress() *CLIProgress {
	return &CLIProgress{out: os.Stderr}
}

func (p *CLIProgress) Start(total int64, description string) {
	p.bar = progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func (p *CLIProgress) Update(current int64) {
	if p.bar != nil {
		_ = p.bar.Set64(current)
	}
}

func (p *CLIProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// LogProgress writes percentages to a zerolog logger and remembers the last
// one so the browser can show it on the status line.
type LogProgress struct {
	logger      zerolog.Logger
	description string
	total       int64
	last        int
}

func NewLogProgress(logger zerolog.Logger) *LogProgress {
	return &LogProgress{logger: logger}
}

func (p *LogProgress) Start(total int64, description string) {
	p.total = total
	p.description = description
	p.last = 0
	p.logger.Debug().Str("op", description).Int64("total", total).Msg("walk started")
}

func (p *LogProgress) Update(current int64) {
	p.last = Percent(current, p.total)
	p.logger.Debug().Str("op", p.description).Int("percent", p.last).Msg("walk progress")
}

func (p *LogProgress) Finish() {
	p.last = 100
	p.logger.Debug().Str("op", p.description).Msg("walk finished")
}

// Last is the most recent percentage reported.
func (p *LogProgress) Last() int {
	return p.last
}

// NoOp discards progress.
type NoOp struct{}

func (NoOp) Start(int64, string) {}
func (NoOp) Update(int64)        {}
func (NoOp) Finish()             {}
