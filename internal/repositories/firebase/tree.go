// Package firebase implements the directory repositories on the Firebase
// Realtime Database, using the node layout the mobile clients write:
//
//	reports/{reportId}                          report fields + published
//	users/{uid}/fcmToken                        push token
//	users/{uid}/emergencyContacts/{contactId}   {name, phoneNumber}
package firebase

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/db"

	"alertcast/internal/repositories/interfaces"
)

const (
	reportsPath = "reports"
	usersPath   = "users"

	fieldPublished         = "published"
	fieldPushToken         = "fcmToken"
	fieldEmergencyContacts = "emergencyContacts"
)

// node is the subset of *db.Ref the repositories use.
type node interface {
	Get(ctx context.Context, v interface{}) error
	Set(ctx context.Context, v interface{}) error
	Update(ctx context.Context, v map[string]interface{}) error
}

type tree interface {
	ref(path string) node
}

type clientTree struct {
	client *db.Client
}

func (t clientTree) ref(path string) node {
	return t.client.NewRef(path)
}

// childPath joins keys under root after checking each is a legal database key.
func childPath(root string, keys ...string) (string, error) {
	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, root)
	for _, key := range keys {
		if !isValidKey(key) {
			return "", fmt.Errorf("%w: %q", interfaces.ErrInvalidID, key)
		}
		parts = append(parts, key)
	}
	return strings.Join(parts, "/"), nil
}

func isValidKey(key string) bool {
	if key == "" || len(key) > 768 {
		return false
	}
	for _, r := range key {
		if r < 0x20 || r == 0x7f {
			return false
		}
		switch r {
		case '.', '$', '#', '[', ']', '/':
			return false
		}
	}
	return true
}
