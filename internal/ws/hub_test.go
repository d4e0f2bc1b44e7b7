package ws

import (
	"encoding/json"
	"testing"
)

// test clients never touch the network: membership and relay logic only use
// the hub and the Send buffer.
func testClient(hub *Hub, userID int64) *Client {
	return NewClient(userID, nil, hub)
}

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	default:
		t.Fatal("expected a relayed event, got none")
		return nil
	}
}

func assertSilent(t *testing.T, c *Client, who string) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("%s unexpectedly received: %s", who, msg)
	default:
	}
}

func TestRelayExcludesSender(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 1)
	b := testClient(hub, 2)

	join := []byte(`{"type":"open-project","project":7}`)
	a.handleMessage(join)
	b.handleMessage(join)

	if n := hub.Members(7); n != 2 {
		t.Fatalf("Members(7) = %d; want 2", n)
	}

	a.handleMessage([]byte(`{"type":"task-created","project":7,"task":{"id":1,"name":"t"}}`))

	var e Envelope
	if err := json.Unmarshal(recv(t, b), &e); err != nil {
		t.Fatalf("unmarshal relayed event: %v", err)
	}
	if e.Type != EventTaskCreated || e.Project != 7 {
		t.Fatalf("relayed envelope = %+v; want task-created for project 7", e)
	}

	assertSilent(t, a, "sender")
}

func TestRelayIsScopedToChannel(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 1)
	b := testClient(hub, 2)

	a.handleMessage([]byte(`{"type":"open-project","project":7}`))
	b.handleMessage([]byte(`{"type":"open-project","project":8}`))

	a.handleMessage([]byte(`{"type":"task-deleted","project":7,"task":{"id":1}}`))

	assertSilent(t, b, "member of another channel")
}

func TestCloseProjectStopsDelivery(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 1)
	b := testClient(hub, 2)

	a.handleMessage([]byte(`{"type":"open-project","project":7}`))
	b.handleMessage([]byte(`{"type":"open-project","project":7}`))
	b.handleMessage([]byte(`{"type":"close-project","project":7}`))

	a.handleMessage([]byte(`{"type":"task-edited","project":7,"task":{"id":1}}`))

	assertSilent(t, b, "departed member")
	if n := hub.Members(7); n != 1 {
		t.Fatalf("Members(7) = %d; want 1", n)
	}
}

func TestLeaveAllEmptiesChannels(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 1)

	a.handleMessage([]byte(`{"type":"open-project","project":7}`))
	a.handleMessage([]byte(`{"type":"open-project","project":8}`))

	hub.LeaveAll(a)

	if hub.Members(7) != 0 || hub.Members(8) != 0 {
		t.Fatal("LeaveAll left memberships behind")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	sender := testClient(hub, 1)
	slow := testClient(hub, 2)
	slow.Send = make(chan []byte) // unbuffered and never read

	hub.Join(7, sender)
	hub.Join(7, slow)

	// must not block
	hub.Broadcast(7, sender, EventTaskCreated, []byte(`{}`))
}

func TestEventWithoutProjectIsDropped(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 1)
	b := testClient(hub, 2)

	join := []byte(`{"type":"open-project","project":7}`)
	a.handleMessage(join)
	b.handleMessage(join)

	a.handleMessage([]byte(`{"type":"task-created","task":{"id":1}}`))

	assertSilent(t, b, "member")
}

func TestMalformedMessageIsIgnored(t *testing.T) {
	hub := NewHub()
	a := testClient(hub, 1)

	a.handleMessage([]byte(`{not json`))
	a.handleMessage([]byte(`{"type":"open-project"}`)) // missing project id

	if hub.Members(0) != 0 {
		t.Fatal("zero project id created a channel")
	}
}

func TestProjectIDFrom(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
	}{
		{"envelope field wins", `{"type":"task-created","project":7,"task":{"project":8}}`, 7},
		{"bare id in task", `{"type":"task-created","task":{"project":9}}`, 9},
		{"resolved object in task", `{"type":"task-created","task":{"project":{"id":10,"name":"p"}}}`, 10},
		{"no reference", `{"type":"task-created","task":{"id":1}}`, 0},
		{"no task", `{"type":"task-created"}`, 0},
	}

	for _, tc := range cases {
		var e Envelope
		if err := json.Unmarshal([]byte(tc.raw), &e); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got := projectIDFrom(&e); got != tc.want {
			t.Fatalf("%s: projectIDFrom = %d; want %d", tc.name, got, tc.want)
		}
	}
}
