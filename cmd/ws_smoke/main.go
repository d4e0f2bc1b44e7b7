package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"taskhub_backend/internal/service"
	"taskhub_backend/internal/ws"
)

// Smoke test for the realtime notifier against a running server: two
// clients join the same project channel, one emits a task event, the other
// must receive it and the sender must not hear its own emission.
func main() {
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "4000"
	}
	base := "ws://localhost:" + port + "/ws?token="

	tokenA, err := service.GenerateJWT(900001)
	if err != nil {
		log.Fatalf("token A: %v", err)
	}
	tokenB, err := service.GenerateJWT(900002)
	if err != nil {
		log.Fatalf("token B: %v", err)
	}

	connA, _, err := websocket.DefaultDialer.Dial(base+tokenA, nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := websocket.DefaultDialer.Dial(base+tokenB, nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	const projectID = 424242

	join, _ := json.Marshal(ws.Envelope{Type: ws.MsgOpenProject, Project: projectID})
	if err := connA.WriteMessage(websocket.TextMessage, join); err != nil {
		log.Fatalf("join A: %v", err)
	}
	if err := connB.WriteMessage(websocket.TextMessage, join); err != nil {
		log.Fatalf("join B: %v", err)
	}

	// give the hub a moment to register both memberships
	time.Sleep(200 * time.Millisecond)

	event, _ := json.Marshal(ws.Envelope{
		Type:    ws.EventTaskCreated,
		Project: projectID,
		Task:    json.RawMessage(`{"id":1,"name":"smoke task","project":424242}`),
	})
	if err := connA.WriteMessage(websocket.TextMessage, event); err != nil {
		log.Fatalf("emit: %v", err)
	}

	_ = connB.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := connB.ReadMessage()
	if err != nil {
		log.Fatalf("B did not receive the event: %v", err)
	}
	log.Printf("B received: %s\n", msg)

	_ = connA.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	if _, echo, err := connA.ReadMessage(); err == nil {
		log.Fatalf("A received its own emission: %s", echo)
	}

	log.Println("ws smoke ok")
}
