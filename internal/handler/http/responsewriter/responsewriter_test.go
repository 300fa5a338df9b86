package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusTeapot)
	n, err := w.Write([]byte("short and stout"))
	if err != nil {
		t.Fatalf("Write err=%v", err)
	}

	if w.StatusCode() != http.StatusTeapot {
		t.Errorf("StatusCode = %d, want %d", w.StatusCode(), http.StatusTeapot)
	}
	if w.BytesWritten() != n {
		t.Errorf("BytesWritten = %d, want %d", w.BytesWritten(), n)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("underlying status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestWrap_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	if _, err := w.Write([]byte("body")); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	if w.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", w.StatusCode())
	}
}

func TestWrap_SecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)

	if w.StatusCode() != http.StatusAccepted {
		t.Errorf("StatusCode = %d, want %d", w.StatusCode(), http.StatusAccepted)
	}
}
