package middleware

import (
	"sync"
	"sync/atomic"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type senderCtx struct {
	tele.Context
	user *tele.User
}

func (c *senderCtx) Sender() *tele.User { return c.user }

func TestSerializePerSenderMutualExclusion(t *testing.T) {
	mw := SerializePerSender()

	var inside int32
	handler := mw(func(c tele.Context) error {
		if !atomic.CompareAndSwapInt32(&inside, 0, 1) {
			t.Error("two handlers ran concurrently for one sender")
		}
		atomic.StoreInt32(&inside, 0)
		return nil
	})

	ctx := &senderCtx{user: &tele.User{ID: 7}}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = handler(ctx)
		}()
	}
	wg.Wait()
}

func TestSerializePerSenderNilSender(t *testing.T) {
	mw := SerializePerSender()
	called := false
	handler := mw(func(c tele.Context) error {
		called = true
		return nil
	})
	if err := handler(&senderCtx{}); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Fatal("next was not invoked")
	}
}
