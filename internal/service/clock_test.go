package service

import "time"

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }
