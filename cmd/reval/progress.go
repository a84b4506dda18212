package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"

	"github.com/revelaction/reval/probe"
)

type progress struct {
	p    *uiprogress.Progress
	bars map[probe.Split]*uiprogress.Bar
}

// newProgress adds a bar for each non empty split of splits.
func newProgress(ui UI, name string, splits probe.Splits) *progress {
	p := uiprogress.New()
	p.Out = ui.Err

	bars := map[probe.Split]*uiprogress.Bar{}
	for _, s := range []probe.Split{probe.Train, probe.Validation, probe.Test} {
		n := len(splits.Get(s))
		if n == 0 {
			continue
		}

		label := fmt.Sprintf("%s %s", name, s)
		bar := p.AddBar(n).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return label
		})
		bars[s] = bar
	}

	return &progress{p: p, bars: bars}
}

func (p *progress) start() { p.p.Start() }
func (p *progress) stop()  { p.p.Stop() }

// incr is called concurrently, once per goroutine and split.
func (p *progress) incr(s probe.Split) {
	if bar, ok := p.bars[s]; ok {
		bar.Incr()
	}
}
