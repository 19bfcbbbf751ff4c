package models

// User is the directory view of an account: only the fields the alert
// pipeline reads or writes.
type User struct {
	UID               string                      `json:"uid,omitempty" bson:"_id"`
	PushToken         string                      `json:"fcmToken,omitempty" bson:"push_token,omitempty"`
	EmergencyContacts map[string]EmergencyContact `json:"emergencyContacts,omitempty" bson:"emergency_contacts,omitempty"`
}

type EmergencyContact struct {
	Name        string `json:"name" bson:"name"`
	PhoneNumber string `json:"phoneNumber" bson:"phone_number"`
}

// PushRecipient is one deliverable push target from a directory snapshot.
type PushRecipient struct {
	UID   string `json:"uid"`
	Token string `json:"token"`
}

// ContactRecipient is one deliverable SMS target from a reporter's contacts.
type ContactRecipient struct {
	ContactID   string `json:"contact_id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// RegisterTokenRequest is the body of POST /register_fcm_token.
type RegisterTokenRequest struct {
	UID   string `json:"uid" validate:"required"`
	Token string `json:"token" validate:"required"`
}
