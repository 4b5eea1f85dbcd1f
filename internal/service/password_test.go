package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantMsgs int
	}{
		{name: "strong password", username: "alice", password: "Str0ngPass!", wantMsgs: 0},
		{name: "empty", username: "alice", password: "", wantMsgs: 1},
		{name: "too short", username: "alice", password: "abc1", wantMsgs: 1},
		{name: "entirely numeric", username: "alice", password: "93816274", wantMsgs: 1},
		{name: "common password", username: "alice", password: "password123", wantMsgs: 1},
		{name: "contains username", username: "alice", password: "alice2024!", wantMsgs: 1},
		{name: "username contains password", username: "supersecret", password: "supersec", wantMsgs: 1},
		{name: "longer than bcrypt accepts", username: "alice", password: strings.Repeat("Str0ngPass!", 10), wantMsgs: 1},
		{name: "exactly 72 bytes", username: "alice", password: strings.Repeat("abcdefgh", 9), wantMsgs: 0},
		{name: "short and numeric", username: "alice", password: "1234", wantMsgs: 2},
		{name: "short username not similarity checked", username: "al", password: "al3xander9", wantMsgs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := &ValidationError{}
			validatePassword(tt.username, tt.password, verr)
			assert.Len(t, verr.Fields["password"], tt.wantMsgs)
		})
	}
}
