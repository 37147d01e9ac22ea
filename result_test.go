package postboard

import (
	"errors"
	"net/http"
	"testing"
)

func TestResultBuilders(t *testing.T) {
	r := OK(greetProps{Name: "Ada"}).
		Trigger("greeted").
		Header("X-One", "1").
		Header("X-Two", "2").
		Status(http.StatusAccepted)

	if r.Props().Name != "Ada" {
		t.Errorf("Props() = %+v", r.Props())
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
	if r.TriggerEvent() != "greeted" {
		t.Errorf("TriggerEvent() = %q", r.TriggerEvent())
	}
	if len(r.Headers()) != 2 || r.Headers()["X-Two"] != "2" {
		t.Errorf("Headers() = %v", r.Headers())
	}
	if r.StatusCode() != http.StatusAccepted {
		t.Errorf("StatusCode() = %d", r.StatusCode())
	}
	if r.Skipped() {
		t.Error("OK result should not be skipped")
	}
}

func TestResultIsValue(t *testing.T) {
	base := OK(greetProps{})
	_ = base.Header("X-One", "1")
	if base.Headers() != nil {
		t.Error("builder mutated the receiver's headers")
	}
}

func TestErrAndSkip(t *testing.T) {
	want := errors.New("nope")
	if got := Err(greetProps{}, want).Err(); got != want {
		t.Errorf("Err().Err() = %v", got)
	}
	s := Skip[greetProps]()
	if !s.Skipped() || s.StatusCode() != 0 {
		t.Errorf("Skip() = %+v", s)
	}
}
