// Command ws_smoke checks a running server end to end: it listens on /ws,
// creates and deletes a task through the API and waits for both events.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"taskboard/internal/client"
	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/ws"
)

func main() {
	// 127.0.0.1 prefers IPv4 over [::1]
	server := flag.String("server", envOr("SMOKE_SERVER", "http://127.0.0.1:"+envOr("APP_PORT", "8080")), "server base URL")
	token := flag.String("token", os.Getenv("SMOKE_TOKEN"), "bearer token, optional")
	timeout := flag.Duration("timeout", 10*time.Second, "how long to wait for each event")
	flag.Parse()

	logger.Init(envOr("LOG_LEVEL", "info"), false)

	wsURL, err := eventsURL(*server, *token)
	if err != nil {
		logger.Fatal("bad server url", "error", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		logger.Fatal("dial ws", "url", wsURL, "error", err)
	}
	defer conn.Close()

	if _, err := waitFor(conn, ws.MsgHello, "", *timeout); err != nil {
		logger.Fatal("no hello", "error", err)
	}
	logger.Info("connected", "url", wsURL)

	api := client.New(*server, *token)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	task, err := api.CreateTask(ctx, client.TaskInput{
		Title:    fmt.Sprintf("ws smoke %s", time.Now().Format(time.RFC3339)),
		Status:   string(domain.StatusNew),
		Feedback: "created by ws_smoke",
	})
	if err != nil {
		logger.Fatal("create task", "error", err)
	}

	ev, err := waitFor(conn, "task_created", task.ID, *timeout)
	if err != nil {
		logger.Fatal("task_created not received", "task_id", task.ID, "error", err)
	}
	logger.Info("event", "type", ev.Type, "task_id", ev.TaskID)

	if err := api.DeleteTask(ctx, task.ID); err != nil {
		logger.Fatal("delete task", "error", err)
	}
	ev, err = waitFor(conn, "task_deleted", task.ID, *timeout)
	if err != nil {
		logger.Fatal("task_deleted not received", "task_id", task.ID, "error", err)
	}
	logger.Info("event", "type", ev.Type, "task_id", ev.TaskID)

	fmt.Println("ok")
}

// waitFor reads events until one matches type and, if set, task id.
func waitFor(conn *websocket.Conn, eventType, taskID string, timeout time.Duration) (*ws.Event, error) {
	deadline := time.Now().Add(timeout)
	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		var ev ws.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			logger.Warn("skipping undecodable message", "error", err)
			continue
		}
		if ev.Type == eventType && (taskID == "" || ev.TaskID == taskID) {
			return &ev, nil
		}
	}
}

func eventsURL(server, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(server, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += "/ws"
	if token != "" {
		u.RawQuery = url.Values{"token": {token}}.Encode()
	}
	return u.String(), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
