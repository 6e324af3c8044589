package preview

import (
	"encoding/json"
	"image/color"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

func newTestStrip(t *testing.T) (*Strip, *httptest.Server) {
	t.Helper()
	l, err := matrix.NewLayout(4, 2)
	require.NoError(t, err)
	s := New(l, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		srv.Close()
	})
	return s, srv
}

func getFrame(t *testing.T, url string) Frame {
	t.Helper()
	resp, err := http.Get(url + "/frame")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var f Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&f))
	return f
}

func TestHealth(t *testing.T) {
	_, srv := newTestStrip(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestIndex(t *testing.T) {
	_, srv := newTestStrip(t)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<canvas")

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFrameOnlyChangesOnRender(t *testing.T) {
	s, srv := newTestStrip(t)
	assert.Equal(t, 8, s.PixelCount())

	f := getFrame(t, srv.URL)
	assert.Equal(t, 4, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, 0, f.Frame)
	assert.Equal(t, strings.Repeat("000000", 8), f.Pixels)

	s.SetPixel(0, color.RGBA{255, 0, 0, 255})
	s.SetPixel(7, color.RGBA{0x12, 0x34, 0x56, 255})
	s.SetPixel(8, color.RGBA{255, 255, 255, 255})
	s.SetPixel(-1, color.RGBA{255, 255, 255, 255})
	assert.Equal(t, 0, getFrame(t, srv.URL).Frame)

	require.NoError(t, s.Render())
	f = getFrame(t, srv.URL)
	assert.Equal(t, 1, f.Frame)

	px, err := f.Decode()
	require.NoError(t, err)
	require.Len(t, px, 8)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, px[0])
	assert.Equal(t, color.RGBA{0x12, 0x34, 0x56, 255}, px[7])
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, px[3])
}

func TestDecodeRejectsBadData(t *testing.T) {
	_, err := Frame{Pixels: "zz"}.Decode()
	assert.Error(t, err)
	_, err = Frame{Pixels: "ffff"}.Decode()
	assert.Error(t, err)
}

func TestWebsocketReceivesFrames(t *testing.T) {
	s, srv := newTestStrip(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, 0, f.Frame, "current frame sent on connect")

	require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 10*time.Millisecond)

	s.SetPixel(1, color.RGBA{0, 255, 0, 255})
	require.NoError(t, s.Render())

	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, 1, f.Frame)
	px, err := f.Decode()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, px[1])

	conn.Close()
	assert.Eventually(t, func() bool { return s.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}
