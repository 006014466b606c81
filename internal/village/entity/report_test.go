package entity

import (
	"testing"
	"time"
)

func TestSessionRecord_结算后不再覆盖(t *testing.T) {
	start := time.Unix(1700000000, 0)
	rec := NewSessionRecord("s-1", start)
	if rec.Dirty() {
		t.Fatalf("新记录不脏")
	}
	rec.Update(Report{Result: ResultRunning, Wave: 1})
	snap, ok := rec.BuildPersistSnapshot(3)
	if !ok || snap.Version != 3 || snap.Report.SessionID != "s-1" || !snap.Report.StartedAt.Equal(start) {
		t.Fatalf("snapshot=%+v ok=%v", snap, ok)
	}
	rec.ClearDirty()

	rec.Update(Report{Result: ResultLost, Message: "Village center destroyed!", Wave: 2})
	rec.ClearDirty()
	rec.Update(Report{Result: ResultStopped, Wave: 9})
	if rec.Dirty() || rec.Report().Result != ResultLost || rec.Report().Wave != 2 {
		t.Fatalf("结算后的记录被覆盖: %+v", rec.Report())
	}
}
