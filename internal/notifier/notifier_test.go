package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoundSentinel/internal/model"
)

func TestSend(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	require.NoError(t, tn.Send(context.Background(), "hello"))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Equal(t, true, got["disable_web_page_preview"])
}

func TestSendWithRetry_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL
	err := tn.SendWithRetry(context.Background(), "hello", 0)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPollOnce_DispatchesCommands(t *testing.T) {
	var replies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			fmt.Fprint(w, `{"ok":true,"result":[{"update_id":7,"message":{"text":" /status "}},{"update_id":8}]}`)
		case "/botTOKEN/sendMessage":
			var body sendMessageRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			replies = append(replies, body.Text)
		}
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TOKEN", "42", "")
	tn.APIBase = srv.URL

	var seen []string
	next, err := tn.pollOnce(context.Background(), srv.Client(), 0, func(cmd string) string {
		seen = append(seen, cmd)
		return "ok"
	})
	require.NoError(t, err)
	assert.Equal(t, 9, next)
	assert.Equal(t, []string{"/status"}, seen)
	assert.Equal(t, []string{"ok"}, replies)
}

func TestFormatters(t *testing.T) {
	ts := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	snap := &model.Snapshot{
		TakenAt:   ts,
		Settings:  model.Settings{WindowSize: 20},
		Rounds:    make([]model.Round, 3),
		Momentum:  []float64{0, 1, 2.5},
		PinkZones: []int{1},
		Signal: model.Signal{
			LatestMSI:   model.MSIValue{Value: 7, Ready: true},
			Tier:        model.ZoneTier{Zone: model.ZonePink},
			DangerScore: 20,
			WarningMsg:  "⚠️ TRAP PATTERNS DETECTED (1)",
		},
	}
	out := FormatStatus(snap)
	assert.Contains(t, out, "Rounds: 3")
	assert.Contains(t, out, "Momentum: +2.50")
	assert.Contains(t, out, "MSI(20): +7")
	assert.Contains(t, out, "Pink Entry Zone")
	assert.Contains(t, out, "TRAP PATTERNS")

	assert.Contains(t, FormatZoneChange(model.ZoneNeutral, model.ZonePullback, model.MSIValue{Value: -4, Ready: true}), "Pullback Zone")
	assert.Contains(t, FormatDangerAlert([]int{4, 5}, 40), "#4, #5")
	assert.Equal(t, "n/a", FormatMSI(model.MSIValue{}))

	prior := ts
	pinks := []model.PinkProjection{
		{Index: 0, Round: model.Round{Timestamp: ts, Multiplier: 12}},
		{Index: 3, Round: model.Round{Timestamp: ts.Add(10 * time.Minute), Multiplier: 20}, ProjectedBy: &prior},
	}
	list := FormatPinkList(pinks, 1)
	assert.Contains(t, list, "#3 20:10:00 20.00x ← 20:00:00")
	assert.NotContains(t, list, "#0 ")
	assert.Equal(t, "No pink rounds yet.", FormatPinkList(nil, 10))
}
