package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mantonx/curator/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventStreamDeliversCatalogEvents(t *testing.T) {
	router, bus := setupRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/events/ws?types=" + string(events.EventTagCreated)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	bus.Publish(events.NewEvent(events.EventSceneCreated, "test", "ignored", nil))
	w := doJSON(t, router, http.MethodPost, "/api/v1/tags", map[string]string{"name": "outdoor"})
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event events.Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, events.EventTagCreated, event.Type)
	assert.Equal(t, "outdoor", event.Data["name"])
}

func TestOriginAllowed(t *testing.T) {
	assert.True(t, originAllowed("", []string{"https://a.example"}))
	assert.True(t, originAllowed("https://any.example", nil))
	assert.True(t, originAllowed("https://A.example", []string{"https://a.example"}))
	assert.True(t, originAllowed("https://b.example", []string{"*"}))
	assert.False(t, originAllowed("https://b.example", []string{"https://a.example"}))
}
