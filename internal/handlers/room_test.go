package handlers

import (
	"net/http"
	"testing"

	"github.com/soumia987/massagerie-app/internal/roomcode"
)

func TestCreateRoomGeneratesCode(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")

	room := createRoomForTest(t, r, alice.ID, map[string]any{"name": "Team"})

	code, _ := room["code"].(string)
	if !roomcode.Valid(code) {
		t.Fatalf("expected a valid generated code, got %q", code)
	}
	if code != roomcode.Normalize(code) {
		t.Fatalf("expected uppercase code, got %q", code)
	}

	members, _ := room["members"].([]any)
	if len(members) != 1 {
		t.Fatalf("expected creator as sole member, got %d members", len(members))
	}
	member := members[0].(map[string]any)
	if member["role"] != "admin" {
		t.Fatalf("expected creator to be admin, got %v", member["role"])
	}
	if room["maxMembers"] != float64(50) {
		t.Fatalf("expected default maxMembers 50, got %v", room["maxMembers"])
	}
}

func TestCreateRoomDuplicateCode(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")
	bob := createTestUser(t, d, "bob")

	createRoomForTest(t, r, alice.ID, map[string]any{"name": "Team", "code": "SALON1"})

	// Case-insensitive collision.
	w := doRequest(t, r, http.MethodPost, "/api/rooms/create", map[string]any{"name": "Copy", "code": "salon1"}, bob.ID)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate code, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateRoomValidation(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")

	cases := []map[string]any{
		{},                                     // missing name
		{"name": "Team", "code": "abc"},        // code too short
		{"name": "Team", "maxMembers": 1},      // below minimum capacity
		{"name": "Team", "maxMembers": 101},    // above maximum capacity
		{"name": "Team", "code": "bad code !"}, // non-alphanumeric code
	}
	for _, body := range cases {
		w := doRequest(t, r, http.MethodPost, "/api/rooms/create", body, alice.ID)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d: %s", body, w.Code, w.Body.String())
		}
	}
}

func TestJoinRoom(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")
	bob := createTestUser(t, d, "bob")

	room := createRoomForTest(t, r, alice.ID, map[string]any{"name": "Team"})
	code := room["code"].(string)

	w := doRequest(t, r, http.MethodPost, "/api/rooms/join", map[string]any{"code": code}, bob.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 joining room, got %d: %s", w.Code, w.Body.String())
	}
	joined := decodeBody(t, w)["room"].(map[string]any)
	members := joined["members"].([]any)
	if len(members) != 2 {
		t.Fatalf("expected 2 members after join, got %d", len(members))
	}

	roles := map[string]int{}
	for _, m := range members {
		roles[m.(map[string]any)["role"].(string)]++
	}
	if roles["admin"] != 1 || roles["member"] != 1 {
		t.Fatalf("expected one admin and one member, got %v", roles)
	}

	// Joining twice is a conflict.
	w = doRequest(t, r, http.MethodPost, "/api/rooms/join", map[string]any{"code": code}, bob.ID)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 joining twice, got %d", w.Code)
	}
}

func TestJoinRoomUnknownCode(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")

	w := doRequest(t, r, http.MethodPost, "/api/rooms/join", map[string]any{"code": "NOPE42"}, alice.ID)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown code, got %d", w.Code)
	}
}

func TestJoinRoomFull(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")
	bob := createTestUser(t, d, "bob")
	carol := createTestUser(t, d, "carol")

	room := createRoomForTest(t, r, alice.ID, map[string]any{"name": "Duo", "maxMembers": 2})
	code := room["code"].(string)

	if w := doRequest(t, r, http.MethodPost, "/api/rooms/join", map[string]any{"code": code}, bob.ID); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for second member, got %d", w.Code)
	}

	w := doRequest(t, r, http.MethodPost, "/api/rooms/join", map[string]any{"code": code}, carol.ID)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 joining a full room, got %d", w.Code)
	}

	// Membership unchanged after the rejected join.
	roomID := room["id"].(string)
	w = doRequest(t, r, http.MethodGet, "/api/rooms/"+roomID, nil, alice.ID)
	got := decodeBody(t, w)["room"].(map[string]any)
	if members := got["members"].([]any); len(members) != 2 {
		t.Fatalf("expected membership to stay at 2, got %d", len(members))
	}
}

func TestGetRoomNonMemberForbidden(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")
	eve := createTestUser(t, d, "eve")

	room := createRoomForTest(t, r, alice.ID, map[string]any{"name": "Team"})
	roomID := room["id"].(string)

	w := doRequest(t, r, http.MethodGet, "/api/rooms/"+roomID, nil, eve.ID)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/rooms/"+alice.ID.String(), nil, alice.ID)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown room, got %d", w.Code)
	}
}

func TestMyRoomsAndLeave(t *testing.T) {
	d := newTestDB(t)
	r := newTestRouter(d)
	alice := createTestUser(t, d, "alice")
	bob := createTestUser(t, d, "bob")

	room := createRoomForTest(t, r, alice.ID, map[string]any{"name": "Team"})
	code := room["code"].(string)
	roomID := room["id"].(string)
	doRequest(t, r, http.MethodPost, "/api/rooms/join", map[string]any{"code": code}, bob.ID)

	w := doRequest(t, r, http.MethodGet, "/api/rooms/my-rooms", nil, bob.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing rooms, got %d", w.Code)
	}
	if rooms := decodeBody(t, w)["rooms"].([]any); len(rooms) != 1 {
		t.Fatalf("expected 1 room for bob, got %d", len(rooms))
	}

	w = doRequest(t, r, http.MethodPost, "/api/rooms/"+roomID+"/leave", nil, bob.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 leaving room, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/rooms/my-rooms", nil, bob.ID)
	if rooms := decodeBody(t, w)["rooms"].([]any); len(rooms) != 0 {
		t.Fatalf("expected no rooms after leaving, got %d", len(rooms))
	}

	// Leaving a room you are not in is still a success.
	w = doRequest(t, r, http.MethodPost, "/api/rooms/"+roomID+"/leave", nil, bob.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 leaving twice, got %d", w.Code)
	}
}
