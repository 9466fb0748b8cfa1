package notifier

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testTelegram(baseURL string) *Telegram {
	return &Telegram{
		botToken: "token",
		chatID:   "chat",
		apiBase:  baseURL,
		client:   &http.Client{Timeout: time.Second},
	}
}

func TestTelegramSendTextRequiresConfig(t *testing.T) {
	err := NewTelegram("", "").SendText("hi")
	assert.Error(t, err)
}

func TestTelegramSendTextTruncatesLongMessage(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotText = r.PostFormValue("text")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := testTelegram(srv.URL).SendText(strings.Repeat("x", telegramMaxTextLen+100))
	assert.NoError(t, err)
	assert.Len(t, gotText, telegramMaxTextLen)
}

func TestTelegramSendTextNoRetryOnBadRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := testTelegram(srv.URL).SendText("hi")
	assert.ErrorContains(t, err, "chat not found")
	assert.Equal(t, 1, calls)
}

func TestTelegramSendTextRetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := testTelegram(srv.URL).SendText("hi")
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}
