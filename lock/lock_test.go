package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitKeyedMutex(t *testing.T) {
	Convey("Writers to one key are serialised", t, func() {
		locker := NewKeyedMutex()
		var inside, maxInside int32

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(context.Background(), "paycol_1")
				if err != nil {
					return
				}
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				unlock()
			}()
		}
		wg.Wait()

		So(maxInside, ShouldEqual, 1)
		So(locker.size(), ShouldEqual, 0)
	})

	Convey("Different keys do not block each other", t, func() {
		locker := NewKeyedMutex()
		unlockA, err := locker.Lock(context.Background(), "paycol_a")
		So(err, ShouldBeNil)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		unlockB, err := locker.Lock(ctx, "paycol_b")
		So(err, ShouldBeNil)
		unlockB()
	})

	Convey("Waiting gives up when the context is done", t, func() {
		locker := NewKeyedMutex()
		unlock, _ := locker.Lock(context.Background(), "paycol_1")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := locker.Lock(ctx, "paycol_1")

		So(err, ShouldEqual, context.DeadlineExceeded)
		unlock()
		So(locker.size(), ShouldEqual, 0)
	})

	Convey("Releasing twice is harmless", t, func() {
		locker := NewKeyedMutex()
		unlock, _ := locker.Lock(context.Background(), "paycol_1")
		unlock()
		unlock()
		So(locker.size(), ShouldEqual, 0)
	})
}

func TestUnitRedisLocker(t *testing.T) {
	Convey("Invalid redis url", t, func() {
		locker, err := NewRedisLocker("not-a-url", time.Second)
		So(locker, ShouldBeNil)
		So(err.Error(), ShouldStartWith, "error parsing redis url")
	})

	Convey("Unreachable redis falls back to the local lock", t, func() {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		locker := NewRedisLockerWithClient(client, time.Second)
		defer locker.Close()

		unlock, err := locker.Lock(context.Background(), "paycol_1")
		So(err, ShouldBeNil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = locker.fallback.Lock(ctx, "paycol_1")
		So(err, ShouldEqual, context.DeadlineExceeded)

		unlock()
	})
}
