package api

func NewLimiter(max int) *Limiter {
	return &Limiter{
		max:    max,
		active: make(map[string]struct{}),
	}
}

func (l *Limiter) Add(id string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if len(l.active) >= l.max {
		return false
	}

	if _, ok := l.active[id]; ok {
		return false
	}

	l.active[id] = struct{}{}
	return true
}

func (l *Limiter) Remove(id string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	delete(l.active, id)
}

func (l *Limiter) Active() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return len(l.active)
}
