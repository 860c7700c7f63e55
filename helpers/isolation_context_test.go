package helpers

import (
	"context"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitBeginOperation(t *testing.T) {
	Convey("Top level operation mints a transaction and request id", t, func() {
		ctx, ic := BeginOperation(context.Background())

		So(ic.TransactionID, ShouldNotBeEmpty)
		So(ic.RequestID, ShouldNotBeEmpty)

		stored, ok := GetIsolationContext(ctx)
		So(ok, ShouldBeTrue)
		So(stored, ShouldResemble, ic)
	})

	Convey("Caller supplied request id is kept", t, func() {
		ctx := WithRequestID(context.Background(), "my-custom-request-id")

		_, ic := BeginOperation(ctx)

		So(ic.RequestID, ShouldEqual, "my-custom-request-id")
	})

	Convey("Nested operation reuses the enclosing ids", t, func() {
		ctx, outer := BeginOperation(WithRequestID(context.Background(), "req-1"))

		_, inner := BeginOperation(ctx)

		So(inner, ShouldResemble, outer)
	})

	Convey("Concurrent operations from one caller get distinct transaction ids", t, func() {
		parent := context.Background()
		ids := make([]string, 3)

		var wg sync.WaitGroup
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, ic := BeginOperation(parent)
				ids[i] = ic.TransactionID
			}(i)
		}
		wg.Wait()

		So(ids[0], ShouldNotEqual, ids[1])
		So(ids[1], ShouldNotEqual, ids[2])
		So(ids[0], ShouldNotEqual, ids[2])
	})

	Convey("Empty request id leaves the context untouched", t, func() {
		ctx := context.Background()
		So(WithRequestID(ctx, ""), ShouldEqual, ctx)
	})

	Convey("Log data carries both ids", t, func() {
		ic := IsolationContext{TransactionID: "tx", RequestID: "req"}
		So(ic.LogData()["transaction_id"], ShouldEqual, "tx")
		So(ic.LogData()["request_id"], ShouldEqual, "req")
	})
}
