package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// SerializePerSender returns a middleware that runs handlers for the same
// sender one at a time. Updates from different senders still run concurrently.
func SerializePerSender() tele.MiddlewareFunc {
	var (
		mu    sync.Mutex
		locks = make(map[int64]*sync.Mutex)
	)
	lockFor := func(userID int64) *sync.Mutex {
		mu.Lock()
		defer mu.Unlock()
		l, ok := locks[userID]
		if !ok {
			l = &sync.Mutex{}
			locks[userID] = l
		}
		return l
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			l := lockFor(user.ID)
			l.Lock()
			defer l.Unlock()
			return next(c)
		}
	}
}
