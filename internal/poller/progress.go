package poller

// progress interpolates between a floor and 100 by attempts/maxAttempts and never moves
// backwards or past the ceiling.
type progress struct {
	floor       int
	ceiling     int
	maxAttempts int
	last        int
}

func newProgress(floor, ceiling, maxAttempts int) *progress {
	if floor < 0 {
		floor = 0
	}
	if ceiling > 99 || ceiling <= 0 {
		ceiling = 99
	}
	if floor > ceiling {
		floor = ceiling
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &progress{floor: floor, ceiling: ceiling, maxAttempts: maxAttempts, last: floor}
}

func (p *progress) at(attempts int) int {
	value := p.floor + (100-p.floor)*attempts/p.maxAttempts
	if value > p.ceiling {
		value = p.ceiling
	}
	if value < p.last {
		value = p.last
	}
	p.last = value
	return value
}
