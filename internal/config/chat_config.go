package config

import "time"

const (
	// Invitations
	InvitationTTL   = 5 * time.Minute
	JanitorInterval = 30 * time.Second

	// Presence flags kept in Redis for the REST partner list.
	PresenceTTL = 90 * time.Second

	// Message sending
	MessagesPerMinute = 60
	MessageBurst      = 10
	MaxMessageLength  = 2000
)
